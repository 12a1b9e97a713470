//go:build protogen

package directory

import (
	"context"
	"time"

	"github.com/gymslot/gymslot/libs/grpcx"
	directoryv1 "github.com/gymslot/gymslot/protos/gen/directory/v1"
	"github.com/gymslot/gymslot/services/booking-service/internal/model"
)

type grpcProvider struct {
	client directoryv1.DirectoryServiceClient
}

// NewGRPCProvider dials the standalone directory service. Returns (nil, nil)
// when no address is configured so callers can fall back to the Postgres
// provider.
func NewGRPCProvider(addr string) (Provider, error) {
	if addr == "" {
		return nil, nil
	}
	conn, err := grpcx.Dial(context.Background(), addr, grpcx.DialOptions{Timeout: 3 * time.Second})
	if err != nil {
		return nil, err
	}
	return &grpcProvider{client: directoryv1.NewDirectoryServiceClient(conn)}, nil
}

func (p *grpcProvider) StaffExists(ctx context.Context, role model.StaffRole, id string) (bool, error) {
	resp, err := p.client.GetStaff(ctx, &directoryv1.GetStaffRequest{StaffId: id, Role: string(role)})
	if err != nil {
		return false, err
	}
	return resp.GetExists(), nil
}

func (p *grpcProvider) StaffName(ctx context.Context, role model.StaffRole, id string) (string, error) {
	resp, err := p.client.GetStaff(ctx, &directoryv1.GetStaffRequest{StaffId: id, Role: string(role)})
	if err != nil {
		return "", err
	}
	return resp.GetFullName(), nil
}

func (p *grpcProvider) UserExists(ctx context.Context, id string) (bool, error) {
	resp, err := p.client.GetMember(ctx, &directoryv1.GetMemberRequest{UserId: id})
	if err != nil {
		return false, err
	}
	return resp.GetExists(), nil
}
