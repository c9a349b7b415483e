package service

import (
	"context"
	"log/slog"

	"github.com/konnash/konnash/internal/models"
	"github.com/konnash/konnash/internal/storage"
)

// ClientService manages the people tracked in the notebook.
type ClientService struct {
	store storage.Store
}

// NewClientService creates a new ClientService with the given storage backend.
func NewClientService(store storage.Store) *ClientService {
	return &ClientService{store: store}
}

// Create validates and persists a new client.
func (s *ClientService) Create(ctx context.Context, name, phone string) (*models.Client, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	client := &models.Client{Name: name, Phone: phone}
	if err := s.store.CreateClient(ctx, client); err != nil {
		slog.Error("create client failed", "name", name, "error", err)
		return nil, err
	}

	slog.Info("client created", "client_id", client.ID, "name", client.Name)
	return client, nil
}

// Get retrieves a client by ID.
func (s *ClientService) Get(ctx context.Context, id int64) (*models.Client, error) {
	return s.store.GetClient(ctx, id)
}

// List retrieves all clients.
func (s *ClientService) List(ctx context.Context) ([]*models.Client, error) {
	return s.store.ListClients(ctx)
}

// SearchByName retrieves clients whose name contains namePart.
func (s *ClientService) SearchByName(ctx context.Context, namePart string) ([]*models.Client, error) {
	return s.store.SearchClientsByName(ctx, namePart)
}

// SearchByPhone retrieves clients whose phone contains phonePart.
func (s *ClientService) SearchByPhone(ctx context.Context, phonePart string) ([]*models.Client, error) {
	return s.store.SearchClientsByPhone(ctx, phonePart)
}

// GetByDebt retrieves the client that owns the given debt.
func (s *ClientService) GetByDebt(ctx context.Context, debtID int64) (*models.Client, error) {
	return s.store.GetClientByDebt(ctx, debtID)
}

// Update validates and rewrites a client's name and phone.
func (s *ClientService) Update(ctx context.Context, id int64, name, phone string) (*models.Client, error) {
	if err := validateName(name); err != nil {
		return nil, err
	}
	if err := validatePhone(phone); err != nil {
		return nil, err
	}

	client := &models.Client{ID: id, Name: name, Phone: phone}
	if err := s.store.UpdateClient(ctx, client); err != nil {
		slog.Error("update client failed", "client_id", id, "error", err)
		return nil, err
	}

	slog.Info("client updated", "client_id", id)
	return client, nil
}

// Delete removes a client and, through the store, all of its debts and
// payment history.
func (s *ClientService) Delete(ctx context.Context, id int64) error {
	if err := s.store.DeleteClient(ctx, id); err != nil {
		slog.Error("delete client failed", "client_id", id, "error", err)
		return err
	}

	slog.Info("client deleted", "client_id", id)
	return nil
}

// DeleteAll wipes every client, debt, and payment.
func (s *ClientService) DeleteAll(ctx context.Context) error {
	if err := s.store.DeleteAllClients(ctx); err != nil {
		slog.Error("delete all clients failed", "error", err)
		return err
	}

	slog.Info("all clients deleted")
	return nil
}
