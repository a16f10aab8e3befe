package services

import "github.com/jubilut/academia/internal/app/models"

func modelsFilter(name, email string) models.StudentFilter {
	return models.StudentFilter{Name: name, Email: email}
}

func pageOf(offset, limit uint64) models.Page {
	return models.Page{Offset: offset, Limit: limit}
}
