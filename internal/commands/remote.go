package commands

import (
	"context"

	"todo/internal/config"
	"todo/internal/service"
)

// remoteList picks the remote list for push and pull: the --list flag, then
// the configured remote list, then the account's default list.
func remoteList(ctx context.Context, cfg *config.Config, svc service.Service, name string) (service.TaskList, error) {
	if name == "" {
		name = cfg.RemoteList
	}
	if name == "" {
		return svc.DefaultList(ctx)
	}
	return svc.ResolveList(ctx, name)
}
