package main

import (
	"liveface.io/infrastructure"
	"liveface.io/infrastructure/env"
)

func init() {
	env.LoadEnv()
}

func main() {
	infrastructure.StartServer()
}
