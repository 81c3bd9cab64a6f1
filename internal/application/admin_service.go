package application

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"cloud.google.com/go/storage"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/entity"
	"github.com/mirak2305/hilfe-entreprise-backend/internal/domain/repository"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/helpers"
	"github.com/mirak2305/hilfe-entreprise-backend/pkg/mailer"
)

var (
	ErrCompanyNotFound = errors.New("company not found")
	ErrForbiddenScope  = errors.New("outside of company scope")
)

// EmailPublisher queues email jobs for the worker. *helpers.RabbitPublisher
// satisfies it.
type EmailPublisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// AdminService covers provisioning: companies, users, reference countries and
// company documents.
type AdminService struct {
	Users     repository.UserRepository
	Companies repository.CompanyRepository
	Countries repository.CountryRepository
	Documents repository.DocumentRepository

	Pub          EmailPublisher
	GCS          *storage.Client
	GCSBucket    string
	ES           *elasticsearch.Client
	ESUsersIndex string
	Logger       *logrus.Logger

	FrontendURL     string
	MailSendEnabled bool
}

func NewAdminService(users repository.UserRepository, companies repository.CompanyRepository,
	countries repository.CountryRepository, documents repository.DocumentRepository,
	pub EmailPublisher, gcs *storage.Client, gcsBucket string,
	es *elasticsearch.Client, esUsersIndex string,
	logger *logrus.Logger, frontendURL string, mailSendEnabled bool) *AdminService {
	return &AdminService{
		Users:           users,
		Companies:       companies,
		Countries:       countries,
		Documents:       documents,
		Pub:             pub,
		GCS:             gcs,
		GCSBucket:       gcsBucket,
		ES:              es,
		ESUsersIndex:    esUsersIndex,
		Logger:          logger,
		FrontendURL:     frontendURL,
		MailSendEnabled: mailSendEnabled,
	}
}

func (s *AdminService) GetCompanies(ctx context.Context) ([]*entity.Company, error) {
	return s.Companies.GetAll(ctx)
}

type CreateCompanyInput struct {
	Name            string
	CountryID       string
	BillingEmail    string
	TechnicalEmail  string
	CommercialEmail string
}

func (s *AdminService) CreateCompany(ctx context.Context, in CreateCompanyInput) (*entity.Company, error) {
	c := &entity.Company{
		Name:            in.Name,
		CountryID:       in.CountryID,
		Status:          entity.CompanyActive,
		BillingEmail:    in.BillingEmail,
		TechnicalEmail:  in.TechnicalEmail,
		CommercialEmail: in.CommercialEmail,
	}
	if err := s.Companies.Create(ctx, c); err != nil {
		return nil, fmt.Errorf("create company: %w", err)
	}
	return c, nil
}

// scopedToCompany rejects company admins reaching outside their own company.
// Super admins see everything.
func scopedToCompany(caller *entity.User, companyID string) error {
	if caller.Role == entity.RoleSuperAdmin {
		return nil
	}
	if caller.CompanyID == "" || caller.CompanyID != companyID {
		return ErrForbiddenScope
	}
	return nil
}

func (s *AdminService) GetCompanyUsers(ctx context.Context, caller *entity.User, companyID string) ([]*entity.User, error) {
	if err := scopedToCompany(caller, companyID); err != nil {
		return nil, err
	}
	return s.Users.GetByCompany(ctx, companyID)
}

type CreateUserInput struct {
	CompanyID        string
	HRID             string
	Email            string
	FirstName        string
	LastName         string
	Phone            string
	PhoneCountryCode string
}

// CreateUser provisions an account with a generated temporary password and
// queues the welcome email carrying it. Email delivery is asynchronous and
// must not fail the creation.
func (s *AdminService) CreateUser(ctx context.Context, caller *entity.User, in CreateUserInput) (*entity.User, error) {
	if err := scopedToCompany(caller, in.CompanyID); err != nil {
		return nil, err
	}

	tempPassword, err := helpers.GenTempPassword(10)
	if err != nil {
		return nil, fmt.Errorf("generate password: %w", err)
	}
	hash, err := helpers.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	u := &entity.User{
		CompanyID:        in.CompanyID,
		HRID:             in.HRID,
		Email:            strings.ToLower(strings.TrimSpace(in.Email)),
		PasswordHash:     hash,
		FirstName:        in.FirstName,
		LastName:         in.LastName,
		Phone:            in.Phone,
		PhoneCountryCode: in.PhoneCountryCode,
		Role:             entity.RoleUser,
		Status:           entity.StatusActive,
	}
	if err := s.Users.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	if s.Pub != nil && s.MailSendEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplateTempPassword,
			Data: map[string]any{
				"Name":        u.FirstName + " " + u.LastName,
				"Password":    tempPassword,
				"FrontendURL": s.FrontendURL,
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("queue welcome email failed")
		}
	}

	_ = s.indexUser(ctx, u)
	return u, nil
}

// ResetUserPassword replaces the user's password with a fresh temporary one
// and queues the notification email. Outstanding tokens stay valid until
// expiry; only the credential changes.
func (s *AdminService) ResetUserPassword(ctx context.Context, caller *entity.User, userID string) error {
	u, err := s.Users.GetByID(ctx, userID)
	if err != nil {
		return err
	}
	if err := scopedToCompany(caller, u.CompanyID); err != nil {
		return err
	}

	tempPassword, err := helpers.GenTempPassword(10)
	if err != nil {
		return fmt.Errorf("generate password: %w", err)
	}
	hash, err := helpers.HashPassword(tempPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := s.Users.UpdatePasswordHash(ctx, u.ID, hash); err != nil {
		return fmt.Errorf("store password: %w", err)
	}

	if s.Pub != nil && s.MailSendEnabled {
		job := mailer.EmailJob{
			To:       u.Email,
			Template: mailer.TemplatePasswordReset,
			Data: map[string]any{
				"Name":        u.FirstName + " " + u.LastName,
				"Password":    tempPassword,
				"FrontendURL": s.FrontendURL,
			},
		}
		if err := s.Pub.PublishJSON(ctx, job); err != nil && s.Logger != nil {
			s.Logger.WithError(err).WithField("email", u.Email).Warn("queue reset email failed")
		}
	}
	return nil
}

func (s *AdminService) GetCountries(ctx context.Context) ([]*entity.Country, error) {
	return s.Countries.GetAll(ctx)
}

// UploadDocument stores the file in the object store and records its metadata.
func (s *AdminService) UploadDocument(ctx context.Context, caller *entity.User, companyID, filename, contentType string, r io.Reader) (*entity.Document, error) {
	if err := scopedToCompany(caller, companyID); err != nil {
		return nil, err
	}
	if s.GCS == nil || s.GCSBucket == "" {
		return nil, errors.New("object storage not configured")
	}
	if _, err := s.Companies.GetByID(ctx, companyID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCompanyNotFound
		}
		return nil, fmt.Errorf("load company: %w", err)
	}

	ext := strings.ToLower(filepath.Ext(filename))
	objectPath := filepath.ToSlash(filepath.Join("documents", companyID, uuid.NewString()+ext))
	url, err := helpers.UploadObject(ctx, s.GCS, s.GCSBucket, objectPath, contentType, r)
	if err != nil {
		return nil, fmt.Errorf("upload document: %w", err)
	}

	d := &entity.Document{
		CompanyID:   companyID,
		Name:        filename,
		ContentType: contentType,
		URL:         url,
		UploadedBy:  caller.ID,
	}
	if err := s.Documents.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("store document metadata: %w", err)
	}
	return d, nil
}

func (s *AdminService) GetDocuments(ctx context.Context, caller *entity.User, companyID string) ([]*entity.Document, error) {
	if err := scopedToCompany(caller, companyID); err != nil {
		return nil, err
	}
	return s.Documents.GetByCompany(ctx, companyID)
}

func (s *AdminService) indexUser(ctx context.Context, u *entity.User) error {
	if s.ES == nil || s.ESUsersIndex == "" {
		return nil
	}
	doc := map[string]any{
		"id":         u.ID,
		"company_id": u.CompanyID,
		"hr_id":      u.HRID,
		"email":      u.Email,
		"first_name": u.FirstName,
		"last_name":  u.LastName,
		"role":       u.Role,
		"status":     u.Status,
		"created_at": u.CreatedAt.Format(time.RFC3339Nano),
	}
	b, _ := json.Marshal(doc)
	req := esapi.IndexRequest{Index: s.ESUsersIndex, DocumentID: u.ID, Body: strings.NewReader(string(b)), Refresh: "false"}
	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()
	res, err := req.Do(c, s.ES)
	if err != nil {
		if s.Logger != nil {
			s.Logger.WithError(err).WithField("user_id", u.ID).Warn("es index failed")
		}
		return err
	}
	defer func() { _ = res.Body.Close() }()
	if res.IsError() && s.Logger != nil {
		s.Logger.WithField("status", res.Status()).WithField("user_id", u.ID).Warn("es index response error")
	}
	return nil
}

// SearchUsers performs a multi_match search on email and name fields.
func (s *AdminService) SearchUsers(ctx context.Context, q string, size int) ([]map[string]any, error) {
	if s.ES == nil || s.ESUsersIndex == "" {
		return []map[string]any{}, nil
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	query := map[string]any{
		"query": map[string]any{
			"multi_match": map[string]any{
				"query":  q,
				"fields": []string{"email^2", "first_name", "last_name", "hr_id"},
			},
		},
		"size": size,
	}
	b, _ := json.Marshal(query)

	c, cancel := context.WithTimeout(ctx, 3*time.Second)
	defer cancel()

	res, err := s.ES.Search(
		s.ES.Search.WithContext(c),
		s.ES.Search.WithIndex(s.ESUsersIndex),
		s.ES.Search.WithBody(strings.NewReader(string(b))),
	)
	if err != nil {
		return nil, err
	}
	defer func() { _ = res.Body.Close() }()

	var parsed struct {
		Hits struct {
			Hits []struct {
				ID     string         `json:"_id"`
				Source map[string]any `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, err
	}

	out := make([]map[string]any, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		out = append(out, h.Source)
	}
	return out, nil
}
