package api

import (
	"errors"

	"github.com/google/uuid"
	"github.com/phrazzld/todo-api/internal/domain"
	"github.com/phrazzld/todo-api/internal/service"
)

// Request payloads. Text bounds mirror domain.MinTextLength and
// domain.MaxTextLength so requests fail before reaching a service.

// CreateTodoListRequest defines the payload for POST /todos.
type CreateTodoListRequest struct {
	Title *string `json:"title" validate:"required,min=3,max=255"`
	// Items optionally seeds the new list.
	Items []string `json:"items" validate:"omitempty,dive,required,min=3,max=255"`
}

// RenameTodoListRequest defines the payload for PUT /todos/{id}.
type RenameTodoListRequest struct {
	Title *string `json:"title" validate:"required,min=3,max=255"`
}

// UpdateItemRequest is one element of the PATCH /items payload.
type UpdateItemRequest struct {
	ID          *string `json:"id"          validate:"required,guid"`
	Description *string `json:"description" validate:"omitempty,min=3,max=255"`
	Completed   *bool   `json:"completed"`
}

// DesignationRequest defines the payload for POST and PUT /designation.
type DesignationRequest struct {
	Name *string `json:"name" validate:"required,min=3,max=255"`
}

// itemDescriptionRule validates one element of a POST /todos/{id}/items payload.
const itemDescriptionRule = "required,min=3,max=255"

// itemIDRule validates one element of a DELETE /items payload.
const itemIDRule = "required,guid"

// Responses

// MessageResponse is a bare message body.
type MessageResponse struct {
	Message string `json:"message"`
}

// TodoListResponse is the public view of a todo list.
type TodoListResponse struct {
	ID    uuid.UUID `json:"id"`
	Title string    `json:"title"`
}

// TodoItemResponse is the public view of a todo item.
type TodoItemResponse struct {
	ID          uuid.UUID `json:"id"`
	Completed   bool      `json:"completed"`
	Description string    `json:"description"`
}

// DesignationResponse is the public view of a designation.
type DesignationResponse struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

// PageResponse wraps one page of a listing with the total count.
type PageResponse[T any] struct {
	Total int `json:"total"`
	Data  []T `json:"data"`
}

// DeleteItemsResponse reports the outcome of DELETE /items.
type DeleteItemsResponse struct {
	Deleted  int `json:"deleted"`
	Excluded int `json:"excluded"`
}

func toTodoListResponse(l *domain.TodoList) TodoListResponse {
	return TodoListResponse{ID: l.ID, Title: l.Title}
}

func toTodoItemResponse(i *domain.TodoItem) TodoItemResponse {
	return TodoItemResponse{ID: i.ID, Completed: i.Completed, Description: i.Description}
}

func toDesignationResponse(d *domain.Designation) DesignationResponse {
	return DesignationResponse{ID: d.ID, Name: d.Name}
}

func toItemResponses(items []*domain.TodoItem) []TodoItemResponse {
	out := make([]TodoItemResponse, 0, len(items))
	for _, item := range items {
		out = append(out, toTodoItemResponse(item))
	}
	return out
}

func toPageResponse[E, T any](page service.PageResult[E], convert func(E) T) PageResponse[T] {
	data := make([]T, 0, len(page.Items))
	for _, item := range page.Items {
		data = append(data, convert(item))
	}
	return PageResponse[T]{Total: page.Total, Data: data}
}

// toItemPatch converts a validated request element to a domain patch.
func (r UpdateItemRequest) toItemPatch() (domain.ItemPatch, error) {
	id, err := uuid.Parse(*r.ID)
	if err != nil {
		return domain.ItemPatch{}, domain.NewValidationError("id", "must be a valid GUID", domain.ErrInvalidID)
	}
	return domain.ItemPatch{ID: id, Description: r.Description, Completed: r.Completed}, nil
}

// atIndex points a validation error at element i of an array body.
func atIndex(err error, i int) error {
	var verr *domain.ValidationError
	if !errors.As(err, &verr) || verr.Field == "" {
		return err
	}
	return domain.NewValidationError(indexLabel(i)+"."+verr.Field, verr.Message, verr.Err)
}
