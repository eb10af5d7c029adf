package main

import "github.com/ValentinKolb/mediaser/cmd"

func main() {
	cmd.Execute()
}
