package main

import "github.com/gwifloria/eriko-gallery/cmd"

func main() {
	cmd.Execute()
}
