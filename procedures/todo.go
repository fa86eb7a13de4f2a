package procedures

import (
	"context"
	"net/http"

	M "website/model/model"
	"website/rpc"
)

func (deps *Dependencies) todoList(ctx context.Context, input M.ListInput) ([]M.TodoEntry, error) {
	entries, errCode := deps.Store.GetTodoEntries(input.Limit, input.Offset)
	if errCode != http.StatusFound {
		return nil, rpc.FromStatusCode(errCode, "todo entries")
	}
	return entries, nil
}

func (deps *Dependencies) todoGet(ctx context.Context, input M.IDInput) (*M.TodoEntry, error) {
	entry, errCode := deps.Store.GetTodoEntry(input.ID)
	if errCode != http.StatusFound {
		return nil, rpc.FromStatusCode(errCode, "todo entry")
	}
	return entry, nil
}

func (deps *Dependencies) todoCreate(ctx context.Context,
	input M.CreateTodoEntryInput) (*M.TodoEntry, error) {

	entry, errCode := deps.Store.CreateTodoEntry(&M.TodoEntry{
		Title:       input.Title,
		Description: input.Description,
	})
	if errCode != http.StatusCreated {
		return nil, rpc.FromStatusCode(errCode, "todo entry")
	}
	return entry, nil
}

func (deps *Dependencies) todoUpdate(ctx context.Context,
	input M.UpdateTodoEntryInput) (*M.TodoEntry, error) {

	entry, errCode := deps.Store.UpdateTodoEntry(input.ID, input.Title, input.Description)
	if errCode != http.StatusAccepted {
		return nil, rpc.FromStatusCode(errCode, "todo entry")
	}
	return entry, nil
}

func (deps *Dependencies) todoRemove(ctx context.Context, input M.IDInput) (*M.TodoEntry, error) {
	entry, errCode := deps.Store.DeleteTodoEntry(input.ID)
	if errCode != http.StatusAccepted {
		return nil, rpc.FromStatusCode(errCode, "todo entry")
	}
	return entry, nil
}
