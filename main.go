package main

import "github.com/fedorhub/ms-go-notifications/cmd"

func main() {
	cmd.Execute()
}
