package main

import "github.com/user/dailyreel/cmd"

func main() {
	cmd.Execute()
}
