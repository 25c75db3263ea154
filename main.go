package main

import (
	"github.com/Ondrosctots/reverbgrd/cmd"
)

func main() {
	cmd.Execute()
}
