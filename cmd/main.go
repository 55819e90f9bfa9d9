package main

import "github.com/taskflow/taskflow-go/internal/app"

func main() {
	app.InitDefaultLogger()
	app.MustReadEnv()
	app.MustInitApplicationLogger()

	app.MustBuildClient()
	app.MustRun()
}
