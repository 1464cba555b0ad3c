package main

import "task-assignment.com/task-assignment/cmd"

func main() {
	cmd.Execute()
}
