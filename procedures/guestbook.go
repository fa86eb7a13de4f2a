package procedures

import (
	"context"
	"net/http"

	M "website/model/model"
	"website/rpc"
)

func (deps *Dependencies) guestbookList(ctx context.Context, input M.ListInput) ([]M.GuestbookEntry, error) {
	entries, errCode := deps.Store.GetGuestbookEntries(input.Limit, input.Offset)
	if errCode != http.StatusFound {
		return nil, rpc.FromStatusCode(errCode, "guestbook entries")
	}
	return entries, nil
}

func (deps *Dependencies) guestbookGet(ctx context.Context, input M.IDInput) (*M.GuestbookEntry, error) {
	entry, errCode := deps.Store.GetGuestbookEntry(input.ID)
	if errCode != http.StatusFound {
		return nil, rpc.FromStatusCode(errCode, "guestbook entry")
	}
	return entry, nil
}

func (deps *Dependencies) guestbookCreate(ctx context.Context,
	input M.CreateGuestbookEntryInput) (*M.GuestbookEntry, error) {

	entry, errCode := deps.Store.CreateGuestbookEntry(&M.GuestbookEntry{
		Name:    input.Name,
		Message: input.Message,
	})
	if errCode != http.StatusCreated {
		return nil, rpc.FromStatusCode(errCode, "guestbook entry")
	}
	return entry, nil
}

func (deps *Dependencies) guestbookUpdate(ctx context.Context,
	input M.UpdateGuestbookEntryInput) (*M.GuestbookEntry, error) {

	entry, errCode := deps.Store.UpdateGuestbookEntry(input.ID, input.Name, input.Message)
	if errCode != http.StatusAccepted {
		return nil, rpc.FromStatusCode(errCode, "guestbook entry")
	}
	return entry, nil
}

func (deps *Dependencies) guestbookRemove(ctx context.Context, input M.IDInput) (*M.GuestbookEntry, error) {
	entry, errCode := deps.Store.DeleteGuestbookEntry(input.ID)
	if errCode != http.StatusAccepted {
		return nil, rpc.FromStatusCode(errCode, "guestbook entry")
	}
	return entry, nil
}
