package main

import "github.com/llehouerou/flipplayer/cmd"

func main() {
	cmd.Execute()
}
