package main

import "github.com/frahmantamala/ticket-management/cmd"

func main() {
	cmd.Execute()
}
