package entity

import (
	"context"

	"github.com/lotoplay/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Game{},
		&Area{},
		&AreaConfig{},
		&Draw{},
		&Ticket{},
		&TicketEntry{},
		&Transaction{},
	)
}
