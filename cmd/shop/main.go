package main

import (
	"context"
	"os"
	"os/signal"
)

// shop 命令行版的目录浏览与购物车
//
// 示例:
//
//	shop books --category Biography --sort Author --dir desc
//	shop cart add 3 2 --from "/books?category=Biography"
//	shop cart show --session alice
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	s := &shop{}
	err := newRootCmd(s).ExecuteContext(ctx)
	s.close()
	if err != nil {
		stop()
		os.Exit(1)
	}
}
