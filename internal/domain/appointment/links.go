package appointment

import (
	"github.com/BruksfildServices01/skin-clinic/internal/httperr"
	"github.com/BruksfildServices01/skin-clinic/internal/models"
)

// ValidateLinks checks that an explicitly linked package or service session
// belongs to the appointment's client and covers its service. cp needs
// Package.Services loaded.
func ValidateLinks(ap *models.Appointment, cp *models.ClientPackage, ss *models.ClientServiceSession) error {
	if cp != nil {
		if cp.ClientID != ap.ClientID || !cp.Package.IncludesService(ap.ServiceID) {
			return httperr.ErrBusinessMsg("invalid_package_link", "The package does not belong to this client or does not include this service.")
		}
	}
	if ss != nil {
		if ss.ClientID != ap.ClientID || ss.ServiceID != ap.ServiceID {
			return httperr.ErrBusinessMsg("invalid_session_link", "The service session does not match this client and service.")
		}
	}
	return nil
}
