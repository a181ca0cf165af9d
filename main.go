package main

import "github.com/nxtrace/qsieve/cmd"

func main() {
	cmd.Excute()
}
