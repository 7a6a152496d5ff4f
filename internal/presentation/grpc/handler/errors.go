package handler

import (
	"errors"

	authapp "coffee-server/internal/application/auth"
	"coffee-server/internal/domain/donation"
	"coffee-server/internal/domain/parent"
	"coffee-server/internal/domain/session"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

var errorCodes = []struct {
	err     error
	code    codes.Code
	message string
}{
	{donation.ErrMissingIdentity, codes.InvalidArgument, "Missing uid or projectId in query/body"},
	{session.ErrMissingIdentity, codes.InvalidArgument, "Missing userId or projectId"},
	{donation.ErrInvalidAmount, codes.InvalidArgument, "Invalid amount"},
	{donation.ErrInvalidTier, codes.InvalidArgument, "Invalid tier"},
	{authapp.ErrUserIDRequired, codes.InvalidArgument, "user_id is required"},
	{parent.ErrNotConfigured, codes.FailedPrecondition, "PARENT_API_BASE env var not set"},
	{parent.ErrCheckoutFailed, codes.Unavailable, "Failed to create checkout session"},
	{donation.ErrPaymentFailed, codes.Unavailable, "Payment processing failed"},
	{session.ErrStatusCheckFailed, codes.Unavailable, "Status check failed"},
}

// handleError エラーをgRPCステータスコードに変換
func handleError(err error) error {
	for _, m := range errorCodes {
		if errors.Is(err, m.err) {
			return status.Error(m.code, m.message)
		}
	}
	return status.Error(codes.Internal, "internal server error")
}
