package main

import "stock-manager/cmd"

func main() {
	cmd.Execute()
}
