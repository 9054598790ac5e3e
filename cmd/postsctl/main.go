package main

import "github.com/information-sharing-networks/posts-demo/internal/cli"

func main() {
	cli.Execute()
}
