package main

import "github.com/msm-logistics/shiptrack/internal/cmd"

func main() {
	cmd.Execute()
}
