package main

import "github.com/Rorical/RoriSearch/cmd"

func main() {
	cmd.Execute()
}
