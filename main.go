package main

import "github.com/illydh/robo-driver/cmd"

func main() {
	cmd.Execute()
}
