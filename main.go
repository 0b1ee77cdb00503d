package main

import "github.com/Manu343726/bodypatch/cmd"

func main() {
	cmd.Execute()
}
