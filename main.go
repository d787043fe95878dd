package main

import "github.com/EO-DataHub/workos-go/cmd"

func main() {
	cmd.Execute()
}
