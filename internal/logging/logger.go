package logging

import (
	"log"
	"os"
)

type LoggerService interface {
	Log(value string)
	LogWarning(value string)
	LogError(value string, err error)
	LogSuccess(value string)
}

type consoleLogger struct {
	out *log.Logger
}

func NewLogger() LoggerService {
	return &consoleLogger{
		out: log.New(os.Stdout, "", log.LstdFlags),
	}
}

func (c *consoleLogger) Log(value string) {
	c.out.Printf("[INFO] %s", value)
}

func (c *consoleLogger) LogWarning(value string) {
	c.out.Printf("[WARNING] %s", value)
}

func (c *consoleLogger) LogError(value string, err error) {
	if err != nil {
		c.out.Printf("[ERROR] %s: %v", value, err)
		return
	}
	c.out.Printf("[ERROR] %s", value)
}

func (c *consoleLogger) LogSuccess(value string) {
	c.out.Printf("[SUCCESS] %s", value)
}
