package main

// @title localaichat API
// @version 1.0
// @description Session-oriented chat against a local llama.cpp server.

// @host localhost:3000
// @BasePath /
// @schemes http
import (
	_ "localaichat/docs"
	protocol "localaichat/protocal"

	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
