package main

import "github.com/jumpigames/newsletter/internal/cli"

func main() {
	cli.Execute()
}
