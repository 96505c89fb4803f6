package routers

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// RecordRouter handles record CRUD. Ownership is always checked through
// the record's contact.
type RecordRouter struct {
	store stores.Store
}

func (r *RecordRouter) Register(rg *gin.RouterGroup) {
	rg.POST("", r.create)
	rg.GET("", r.list)
	rg.GET("/categories/list", r.categories)
	rg.GET("/by-contact/:contact_id", r.listByContact)
	rg.GET("/:record_id", r.get)
	rg.PUT("/:record_id", r.update)
	rg.DELETE("/:record_id", r.delete)
}

func invalidCategoryDetail(category string) string {
	return fmt.Sprintf("無效的分類: %s。有效的分類: %s", category, strings.Join(models.CategoryNames(), ", "))
}

func (r *RecordRouter) create(c *gin.Context) {
	var req schemas.RecordCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	category, valid := models.ParseCategory(req.Category)
	if !valid {
		c.JSON(http.StatusBadRequest, gin.H{"detail": invalidCategoryDetail(req.Category)})
		return
	}

	user := auth.CurrentUser(c)
	contact, err := r.store.GetContact(user.ID, req.ContactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "創建記錄失敗"})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "找不到聯絡人"})
		return
	}

	record := &models.Record{Category: category, Content: req.Content, ContactID: contact.ID}
	if err := r.store.CreateRecord(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "創建記錄失敗"})
		return
	}
	c.JSON(http.StatusCreated, schemas.NewRecordResponse(record))
}

func (r *RecordRouter) list(c *gin.Context) {
	user := auth.CurrentUser(c)
	skip, limit := pagination(c)

	filter := stores.RecordFilter{
		Search: c.Query("search"),
		Offset: skip,
		Limit:  limit,
	}
	if raw := c.Query("contact_id"); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 32)
		if err != nil {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "無效的 ID"})
			return
		}
		contactID := uint(id)
		filter.ContactID = &contactID
	}
	if raw := c.Query("category"); raw != "" {
		category, valid := models.ParseCategory(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"detail": invalidCategoryDetail(raw)})
			return
		}
		filter.Category = &category
	}

	records, total, err := r.store.ListRecords(user.ID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢記錄失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.RecordListResponse{
		Records: recordResponses(records),
		Total:   total,
		Page:    pageFor(skip, limit),
		Size:    len(records),
	})
}

func (r *RecordRouter) categories(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": models.CategoryNames()})
}

func (r *RecordRouter) listByContact(c *gin.Context) {
	contactID, ok := pathID(c, "contact_id")
	if !ok {
		return
	}
	user := auth.CurrentUser(c)

	contact, err := r.store.GetContact(user.ID, contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢記錄失敗"})
		return
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "找不到聯絡人"})
		return
	}

	skip, limit := pagination(c)
	filter := stores.RecordFilter{
		ContactID: &contactID,
		Search:    c.Query("search"),
		Offset:    skip,
		Limit:     limit,
	}
	if raw := c.Query("category"); raw != "" {
		category, valid := models.ParseCategory(raw)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"detail": invalidCategoryDetail(raw)})
			return
		}
		filter.Category = &category
	}

	records, total, err := r.store.ListRecords(user.ID, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢記錄失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.RecordListResponse{
		Records: recordResponses(records),
		Total:   total,
		Page:    pageFor(skip, limit),
		Size:    len(records),
	})
}

func (r *RecordRouter) get(c *gin.Context) {
	record, ok := r.ownedRecord(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecordResponse(record))
}

func (r *RecordRouter) update(c *gin.Context) {
	record, ok := r.ownedRecord(c)
	if !ok {
		return
	}

	var req schemas.RecordUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.Category != nil {
		category, valid := models.ParseCategory(*req.Category)
		if !valid {
			c.JSON(http.StatusBadRequest, gin.H{"detail": invalidCategoryDetail(*req.Category)})
			return
		}
		record.Category = category
	}
	if req.Content != nil {
		record.Content = *req.Content
	}

	if err := r.store.SaveRecord(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "更新記錄失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.NewRecordResponse(record))
}

func (r *RecordRouter) delete(c *gin.Context) {
	record, ok := r.ownedRecord(c)
	if !ok {
		return
	}
	if err := r.store.DeleteRecord(record); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "刪除記錄失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "記錄已刪除"})
}

// ownedRecord resolves the path parameter through the ownership chain.
// Records reached through another user's contact look missing.
func (r *RecordRouter) ownedRecord(c *gin.Context) (*models.Record, bool) {
	recordID, ok := pathID(c, "record_id")
	if !ok {
		return nil, false
	}
	user := auth.CurrentUser(c)

	record, err := r.store.GetRecord(user.ID, recordID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢記錄失敗"})
		return nil, false
	}
	if record == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "找不到記錄"})
		return nil, false
	}
	return record, true
}

func recordResponses(records []models.Record) []schemas.RecordResponse {
	responses := make([]schemas.RecordResponse, len(records))
	for i := range records {
		responses[i] = schemas.NewRecordResponse(&records[i])
	}
	return responses
}
