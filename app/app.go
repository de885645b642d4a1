package app

import (
	"github.com/mbachinger/taeglich/config"
	"github.com/mbachinger/taeglich/database"
	"github.com/mbachinger/taeglich/reminder"
)

type App struct {
	*database.Store
	*reminder.Scheduler
	config.Config
}
