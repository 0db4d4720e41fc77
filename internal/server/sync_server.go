package server

import (
	"context"
	"fmt"
	"net/http"

	"dealsync/internal/domain/service/dealsync"
	"dealsync/pkg/httpx/reply"
	"dealsync/pkg/httpx/req"
	"dealsync/pkg/rest"
)

const healthMessage = "Pipedrive-Katana sync is running"

type syncService interface {
	Sync(ctx context.Context, request dealsync.SyncRequest) (dealsync.SyncResult, error)
}

type SyncServer struct {
	syncService syncService
}

func NewSyncServer(syncService syncService) SyncServer {
	return SyncServer{
		syncService: syncService,
	}
}

func (s SyncServer) postV1SyncOrder(w http.ResponseWriter, r *http.Request) error {
	ctx := r.Context()

	var request rest.SyncOrderRequest

	if err := req.Read(r, &request); err != nil {
		return fmt.Errorf("req.Read: %w", err)
	}

	result, err := s.syncService.Sync(ctx, newSyncRequest(request))
	if err != nil {
		return fmt.Errorf("syncService.Sync: %w", err)
	}

	reply.JSON(ctx, w, http.StatusCreated, newSyncOrderResponse(result))

	return nil
}

func (s SyncServer) getV1Health(w http.ResponseWriter, r *http.Request) error {
	reply.JSON(r.Context(), w, http.StatusOK, rest.HealthResponse{
		Status:  "ok",
		Message: healthMessage,
	})

	return nil
}
