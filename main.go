package main

import "github.com/nguyentranbao-ct/wishlist-bot/cmd"

func main() {
	cmd.Execute()
}
