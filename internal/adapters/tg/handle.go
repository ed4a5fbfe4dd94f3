package tg

import (
	"context"
	"errors"
	"fmt"

	"github.com/gotd/td/telegram"
	"github.com/gotd/td/tg"

	"github.com/Devashishswamii/tgescrowbot/internal/domain"
	"github.com/Devashishswamii/tgescrowbot/internal/ports"
)

// Handle is a live authorized connection. Close stops the background client
// and waits for it to shut down.
type Handle struct {
	client *telegram.Client
	api    *tg.Client
	cancel context.CancelFunc
	done   <-chan error
}

func (h *Handle) Close() error {
	h.cancel()
	err := <-h.done
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}

func (h *Handle) Identity(ctx context.Context) (*domain.Identity, error) {
	id, err := self(ctx, h.client)
	if err != nil {
		return nil, mapError("get self", err)
	}
	return id, nil
}

func (h *Handle) CreateSupergroup(ctx context.Context, title, about string) (*ports.Group, error) {
	updates, err := h.api.ChannelsCreateChannel(ctx, &tg.ChannelsCreateChannelRequest{
		Title:     title,
		About:     about,
		Megagroup: true,
	})
	if err != nil {
		return nil, mapError("create channel", err)
	}
	ch, err := channelFromUpdates(updates)
	if err != nil {
		return nil, &domain.TransportError{Op: "create channel", Err: err}
	}
	return &ports.Group{ID: ch.ID, AccessHash: ch.AccessHash, Title: ch.Title}, nil
}

func (h *Handle) ExportInviteLink(ctx context.Context, g *ports.Group) (string, error) {
	invite, err := h.api.MessagesExportChatInvite(ctx, &tg.MessagesExportChatInviteRequest{
		Peer: &tg.InputPeerChannel{ChannelID: g.ID, AccessHash: g.AccessHash},
	})
	if err != nil {
		return "", mapError("export invite", err)
	}
	exported, ok := invite.(*tg.ChatInviteExported)
	if !ok {
		return "", &domain.TransportError{Op: "export invite", Err: fmt.Errorf("unexpected invite type %T", invite)}
	}
	return exported.Link, nil
}

func (h *Handle) InviteUser(ctx context.Context, g *ports.Group, username string) error {
	resolved, err := h.api.ContactsResolveUsername(ctx, &tg.ContactsResolveUsernameRequest{
		Username: username,
	})
	if err != nil {
		return mapError("resolve username", err)
	}
	user := firstUser(resolved.Users)
	if user == nil {
		return &domain.TransportError{Op: "resolve username", Err: fmt.Errorf("no user for %q", username)}
	}
	_, err = h.api.ChannelsInviteToChannel(ctx, &tg.ChannelsInviteToChannelRequest{
		Channel: &tg.InputChannel{ChannelID: g.ID, AccessHash: g.AccessHash},
		Users:   []tg.InputUserClass{&tg.InputUser{UserID: user.ID, AccessHash: user.AccessHash}},
	})
	if err != nil {
		return mapError("invite to channel", err)
	}
	return nil
}

func channelFromUpdates(updates tg.UpdatesClass) (*tg.Channel, error) {
	u, ok := updates.(*tg.Updates)
	if !ok {
		return nil, fmt.Errorf("unexpected updates type %T", updates)
	}
	for _, chat := range u.Chats {
		if ch, ok := chat.(*tg.Channel); ok {
			return ch, nil
		}
	}
	return nil, fmt.Errorf("created channel missing from updates")
}

func firstUser(users []tg.UserClass) *tg.User {
	for _, u := range users {
		if user, ok := u.(*tg.User); ok {
			return user
		}
	}
	return nil
}
