package service

import (
	"errors"

	"shift-calendar-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrEmployeeNotFound  = repository.ErrEmployeeNotFound
	ErrEmployeeNotLinked = errors.New("chat is not linked to an employee")
	ErrUnsupportedFile   = errors.New("unsupported import file")
	ErrProtectedAdmin    = errors.New("employee is a protected admin")
)

func newLogger() *logrus.Logger {
	logger := logrus.New()
	logger.SetFormatter(&logrus.TextFormatter{
		FullTimestamp:   true,
		TimestampFormat: "2006-01-02 15:04:05",
	})
	logger.SetLevel(logrus.GetLevel())
	return logger
}
