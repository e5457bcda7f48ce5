package dashboarderrors

import (
	"net/http"

	"github.com/krushit1307/HRMS/internal/shared/apperror"
)

var ErrSummaryUnavailable = apperror.New(
	apperror.CodeServiceUnavailable,
	"Dashboard summary is temporarily unavailable",
	http.StatusServiceUnavailable,
)
