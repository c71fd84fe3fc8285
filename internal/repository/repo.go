package repository

import (
	"github.com/Masterminds/squirrel"

	"github.com/ueser-furina/noote-website/pkg/database"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type Repo struct {
	db database.Tx
}

func New(db database.Tx) *Repo {
	return &Repo{db: db}
}
