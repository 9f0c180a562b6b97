package dto

import (
	"github.com/xiebiao/bookshelf/internal/domain/book"
)

// BookResponse HTTP图书响应
// 字段名与存储字段一致：title/author/publicationYear/ISBN
type BookResponse struct {
	Title           string `json:"title" example:"Dune"`
	Author          string `json:"author" example:"Frank Herbert"`
	PublicationYear int    `json:"publicationYear" example:"1965"`
	ISBN            string `json:"ISBN" example:"9780441013593"`
}

// FromBook 领域实体转响应DTO
func FromBook(b *book.Book) *BookResponse {
	return &BookResponse{
		Title:           b.Title,
		Author:          b.Author,
		PublicationYear: b.PublicationYear,
		ISBN:            b.ISBN,
	}
}

// FromBooks 实体列表转响应DTO列表
// 返回值保证非nil，列表为空时序列化为[]而不是null
func FromBooks(books []*book.Book) []*BookResponse {
	list := make([]*BookResponse, 0, len(books))
	for _, b := range books {
		list = append(list, FromBook(b))
	}
	return list
}
