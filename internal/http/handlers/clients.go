package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"corptransit/internal/domain"
	"corptransit/internal/domain/models"
	"corptransit/internal/http/middleware"
	"corptransit/internal/repositories"
	"corptransit/internal/utils"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

type clientPayload struct {
	Name         string `json:"name" binding:"required"`
	Code         string `json:"code" binding:"required"`
	ContactEmail string `json:"contactEmail"`
	ContactPhone string `json:"contactPhone"`
	Address      string `json:"address"`
	GSTNumber    string `json:"gstNumber"`
	Active       *bool  `json:"active"`
}

func pagination(c *gin.Context) (limit, offset int) {
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	if limit <= 0 || limit > 200 {
		limit = 50
	}
	offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))
	if offset < 0 {
		offset = 0
	}
	return limit, offset
}

// GET /api/clients
func GetClients(c *gin.Context) {
	limit, offset := pagination(c)
	clients, err := repositories.ClientRepository{}.List(c.Query("q"), limit, offset)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"clients": clients})
}

// GET /api/clients/:id
func GetClientByID(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	client, err := repositories.ClientRepository{}.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, client)
}

// POST /api/clients
func CreateClient(c *gin.Context) {
	var req clientPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.ClientRepository{}

	code := strings.TrimSpace(req.Code)
	exists, err := repo.ExistsByCode(code)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	if exists {
		RespondDomainError(c, domain.ConflictError{Resource: "client", Msg: "code already in use"})
		return
	}

	client := models.Client{
		ID:           uuid.New(),
		Name:         strings.TrimSpace(req.Name),
		Code:         code,
		ContactEmail: strings.TrimSpace(req.ContactEmail),
		ContactPhone: strings.TrimSpace(req.ContactPhone),
		Address:      strings.TrimSpace(req.Address),
		GSTNumber:    strings.TrimSpace(req.GSTNumber),
		Active:       true,
	}
	if req.Active != nil {
		client.Active = *req.Active
	}
	if err := repo.Insert(client); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "clients", "create", "client="+client.ID.String())
	c.JSON(http.StatusCreated, client)
}

// PUT /api/clients/:id
func UpdateClient(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	var req clientPayload
	if !BindJSONOrError(c, &req) {
		return
	}
	repo := repositories.ClientRepository{}
	client, err := repo.GetByID(id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}

	client.Name = strings.TrimSpace(req.Name)
	client.Code = strings.TrimSpace(req.Code)
	client.ContactEmail = strings.TrimSpace(req.ContactEmail)
	client.ContactPhone = strings.TrimSpace(req.ContactPhone)
	client.Address = strings.TrimSpace(req.Address)
	client.GSTNumber = strings.TrimSpace(req.GSTNumber)
	if req.Active != nil {
		client.Active = *req.Active
	}
	if err := repo.Update(client); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "clients", "update", "client="+client.ID.String())
	c.JSON(http.StatusOK, client)
}

// DELETE /api/clients/:id
func DeleteClient(c *gin.Context) {
	id, ok := ParamUUID(c, "id")
	if !ok {
		return
	}
	if err := (repositories.ClientRepository{}).Delete(id); err != nil {
		RespondDomainError(c, err)
		return
	}
	utils.LogEvent(middleware.GetRequestID(c), "clients", "delete", "client="+id.String())
	c.JSON(http.StatusOK, gin.H{"message": "client deleted"})
}
