package main

import "github.com/livinsalti/salti/cmd"

func main() {
	cmd.Execute()
}
