package application

import (
	"context"
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"

	domainerrors "raspepix/contexts/affiliate-network/commission-service/domain/errors"
)

const defaultPublicBaseURL = "https://raspepix.com.br"

// ReferralLink builds the public signup link carrying an affiliate code.
func (s Service) ReferralLink(code string) string {
	base := strings.TrimRight(strings.TrimSpace(s.PublicBaseURL), "/")
	if base == "" {
		base = defaultPublicBaseURL
	}
	return fmt.Sprintf("%s/r/%s", base, normalizeCode(code))
}

// ReferralQR renders the affiliate's referral link as a 256px PNG QR code.
func (s Service) ReferralQR(ctx context.Context, affiliateID string) ([]byte, error) {
	affiliate, err := s.Repo.GetAffiliate(ctx, strings.TrimSpace(affiliateID))
	if err != nil {
		return nil, err
	}
	if normalizeCode(affiliate.ReferralCode) == "" {
		return nil, domainerrors.ErrAffiliateNotFound
	}
	return qrcode.Encode(s.ReferralLink(affiliate.ReferralCode), qrcode.Medium, 256)
}
