// CaptureReporter 记录驱动器输出的控制台事件，便于断言顺序与内容。
package mocks

import (
	"fmt"
	"strings"
	"sync"
)

// EventKind 控制台事件类型
type EventKind string

const (
	EventRound   EventKind = "round"
	EventSay     EventKind = "say"
	EventNote    EventKind = "note"
	EventHeading EventKind = "heading"
)

// ReportEvent 单条控制台事件
type ReportEvent struct {
	Kind    EventKind
	Round   int
	Speaker string
	Text    string
}

// CaptureReporter 实现 conversation.Reporter，并发安全
type CaptureReporter struct {
	mu     sync.Mutex
	events []ReportEvent
}

// NewCaptureReporter 创建 CaptureReporter
func NewCaptureReporter() *CaptureReporter {
	return &CaptureReporter{}
}

func (r *CaptureReporter) add(e ReportEvent) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, e)
}

func (r *CaptureReporter) Round(n int)              { r.add(ReportEvent{Kind: EventRound, Round: n}) }
func (r *CaptureReporter) Say(speaker, text string) { r.add(ReportEvent{Kind: EventSay, Speaker: speaker, Text: text}) }
func (r *CaptureReporter) Note(text string)         { r.add(ReportEvent{Kind: EventNote, Text: text}) }
func (r *CaptureReporter) Heading(text string)      { r.add(ReportEvent{Kind: EventHeading, Text: text}) }

// Events 返回全部事件副本
func (r *CaptureReporter) Events() []ReportEvent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]ReportEvent(nil), r.events...)
}

// Says 返回 Say 事件，格式为 "Speaker: text"
func (r *CaptureReporter) Says() []string {
	var out []string
	for _, e := range r.Events() {
		if e.Kind == EventSay {
			out = append(out, e.Speaker+": "+e.Text)
		}
	}
	return out
}

// SaysBy 返回指定发言者的 Say 文本
func (r *CaptureReporter) SaysBy(speaker string) []string {
	var out []string
	for _, e := range r.Events() {
		if e.Kind == EventSay && e.Speaker == speaker {
			out = append(out, e.Text)
		}
	}
	return out
}

// Count 统计某类事件数量
func (r *CaptureReporter) Count(kind EventKind) int {
	n := 0
	for _, e := range r.Events() {
		if e.Kind == kind {
			n++
		}
	}
	return n
}

// Headings 返回全部 Heading 文本
func (r *CaptureReporter) Headings() []string {
	var out []string
	for _, e := range r.Events() {
		if e.Kind == EventHeading {
			out = append(out, e.Text)
		}
	}
	return out
}

// String 以紧凑形式输出全部事件，调试用
func (r *CaptureReporter) String() string {
	var b strings.Builder
	for _, e := range r.Events() {
		switch e.Kind {
		case EventRound:
			fmt.Fprintf(&b, "[round %d]\n", e.Round)
		case EventSay:
			fmt.Fprintf(&b, "%s: %s\n", e.Speaker, e.Text)
		default:
			fmt.Fprintf(&b, "[%s] %s\n", e.Kind, e.Text)
		}
	}
	return b.String()
}
