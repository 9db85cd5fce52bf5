package main

import (
	"flag"
	"fmt"
	"os"

	"hiringgo/log-service/config"
	"hiringgo/log-service/pkg/jwt"
)

// 本地开发工具：签发测试用 Access Token。
// 生产环境的 Token 由上游身份服务签发，本服务只做校验。
//
// 用法:
//
//	tokengen -user 42 -role student
//	tokengen -user 7 -role lecturer -config ./config/config.yaml
func main() {
	userID := flag.Int64("user", 0, "用户数值 ID")
	role := flag.String("role", jwt.RoleStudent, "角色: student | lecturer")
	configPath := flag.String("config", "", "配置文件路径（默认查找 ./config/config.yaml）")
	flag.Parse()

	if *userID <= 0 {
		fmt.Fprintln(os.Stderr, "用法: tokengen -user <id> -role <student|lecturer>")
		os.Exit(2)
	}
	if *role != jwt.RoleStudent && *role != jwt.RoleLecturer {
		fmt.Fprintf(os.Stderr, "无效角色: %s\n", *role)
		os.Exit(2)
	}

	cfg, err := config.Load(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "加载配置失败: %v\n", err)
		os.Exit(1)
	}

	token, err := jwt.NewManager(&cfg.Auth).GenerateAccessToken(*userID, *role)
	if err != nil {
		fmt.Fprintf(os.Stderr, "签发 Token 失败: %v\n", err)
		os.Exit(1)
	}

	fmt.Println(token)
}
