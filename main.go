package main

import "github.com/aASDa213ASD/xlivewall/cmd"

func main() {
	cmd.Execute()
}
