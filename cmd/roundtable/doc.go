/*
Command roundtable 运行角色对话场景并把对话逐行打印到标准输出。

	roundtable <sequential|concurrent|jury|conversation|debate> [-config file] [-rounds n] [-env-file path]

日志写入标准错误，标准输出只承载对话记录与最后一行 "Execution time"。
运行失败时退出码为 1，参数错误为 2。
*/
package main
