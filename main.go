package main

import "github.com/KaramelBytes/mixsplit/cmd"

func main() {
	cmd.Execute()
}
