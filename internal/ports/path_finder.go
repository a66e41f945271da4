package ports

import "context"

type PathFinder interface {
	DefaultSessionsPath(ctx context.Context) (string, error)
	DefaultUsersPath(ctx context.Context) (string, error)
	DeriveOutputPath(sessionsPath string) (string, error)
}
