package routers

import (
	"fmt"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/storage"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// ContactRouter handles contact CRUD and avatar management.
type ContactRouter struct {
	store   stores.Store
	avatars *storage.AvatarStorage
}

func (r *ContactRouter) Register(rg *gin.RouterGroup) {
	rg.POST("", r.create)
	rg.POST("/with-avatar", r.createWithAvatar)
	rg.GET("", r.list)
	rg.GET("/:contact_id", r.get)
	rg.PUT("/:contact_id", r.update)
	rg.DELETE("/:contact_id", r.delete)

	rg.POST("/:contact_id/avatar", r.uploadAvatar)
	rg.GET("/:contact_id/avatar/image", r.getAvatarImage)
	rg.DELETE("/:contact_id/avatar", r.deleteAvatar)
}

func (r *ContactRouter) create(c *gin.Context) {
	var req schemas.ContactCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	contact := &models.Contact{Name: req.Name, Description: req.Description, UserID: user.ID}
	if err := r.store.CreateContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "創建聯絡人失敗"})
		return
	}
	c.JSON(http.StatusCreated, schemas.NewContactResponse(contact))
}

// createWithAvatar creates a contact and uploads its avatar in one
// multipart request. The avatar is optional.
func (r *ContactRouter) createWithAvatar(c *gin.Context) {
	name := c.PostForm("name")
	if name == "" {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "聯絡人名稱不能為空"})
		return
	}

	user := auth.CurrentUser(c)
	contact := &models.Contact{Name: name, UserID: user.ID}
	if description := c.PostForm("description"); description != "" {
		contact.Description = &description
	}
	if err := r.store.CreateContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "創建聯絡人失敗"})
		return
	}

	if _, err := c.FormFile("avatar"); err == nil {
		if err := r.storeAvatar(c, contact); err != nil {
			// contact was created; report the avatar failure only
			c.JSON(http.StatusBadRequest, gin.H{
				"detail":  err.Error(),
				"contact": schemas.NewContactResponse(contact),
			})
			return
		}
	}
	c.JSON(http.StatusCreated, schemas.NewContactResponse(contact))
}

func (r *ContactRouter) list(c *gin.Context) {
	user := auth.CurrentUser(c)
	skip, limit := pagination(c)
	search := c.Query("search")

	contacts, total, err := r.store.ListContacts(user.ID, search, skip, limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢聯絡人失敗"})
		return
	}

	responses := make([]schemas.ContactResponse, len(contacts))
	for i := range contacts {
		responses[i] = schemas.NewContactResponse(&contacts[i])
	}
	c.JSON(http.StatusOK, schemas.ContactListResponse{
		Contacts: responses,
		Total:    total,
		Page:     pageFor(skip, limit),
		Size:     len(responses),
	})
}

func (r *ContactRouter) get(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}
	c.JSON(http.StatusOK, schemas.NewContactResponse(contact))
}

func (r *ContactRouter) update(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}

	var req schemas.ContactUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}
	if req.Name != nil {
		contact.Name = *req.Name
	}
	if req.Description != nil {
		contact.Description = req.Description
	}

	if err := r.store.SaveContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "更新聯絡人失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.NewContactResponse(contact))
}

func (r *ContactRouter) delete(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}

	if contact.AvatarKey != nil {
		if err := r.avatars.Delete(c.Request.Context(), *contact.AvatarKey); err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "刪除聯絡人失敗"})
			return
		}
	}
	if err := r.store.DeleteContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "刪除聯絡人失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "聯絡人已刪除"})
}

func (r *ContactRouter) uploadAvatar(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}

	file, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "缺少上傳檔案"})
		return
	}
	if err := r.storeAvatar(c, contact); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": err.Error()})
		return
	}
	c.JSON(http.StatusOK, schemas.FileUploadResponse{
		Filename:    file.Filename,
		Size:        file.Size,
		ContentType: file.Header.Get("Content-Type"),
	})
}

// storeAvatar validates and uploads the posted avatar, replacing the old
// object, and persists the new key on the contact.
func (r *ContactRouter) storeAvatar(c *gin.Context, contact *models.Contact) error {
	file, err := c.FormFile("file")
	if err != nil {
		file, err = c.FormFile("avatar")
		if err != nil {
			return fmt.Errorf("缺少上傳檔案")
		}
	}

	contentType := file.Header.Get("Content-Type")
	if err := storage.ValidateAvatar(contentType, file.Size); err != nil {
		return err
	}

	src, err := file.Open()
	if err != nil {
		return fmt.Errorf("讀取上傳檔案失敗: %w", err)
	}
	defer src.Close()
	data, err := io.ReadAll(src)
	if err != nil {
		return fmt.Errorf("讀取上傳檔案失敗: %w", err)
	}

	ctx := c.Request.Context()
	key, err := r.avatars.Upload(ctx, data, contentType, contact.UserID, contact.ID)
	if err != nil {
		return err
	}

	if contact.AvatarKey != nil {
		// old object removal is best-effort
		_ = r.avatars.Delete(ctx, *contact.AvatarKey)
	}
	contact.AvatarKey = &key
	if err := r.store.SaveContact(contact); err != nil {
		return fmt.Errorf("儲存頭像失敗: %w", err)
	}
	return nil
}

// getAvatarImage proxies the avatar bytes from object storage.
func (r *ContactRouter) getAvatarImage(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}
	if contact.AvatarKey == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "此聯絡人沒有頭像"})
		return
	}

	data, contentType, err := r.avatars.Fetch(c.Request.Context(), *contact.AvatarKey)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "讀取頭像失敗"})
		return
	}
	c.Header("Cache-Control", "public, max-age=3600")
	c.Data(http.StatusOK, contentType, data)
}

func (r *ContactRouter) deleteAvatar(c *gin.Context) {
	contact, ok := r.ownedContact(c)
	if !ok {
		return
	}
	if contact.AvatarKey == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "此聯絡人沒有頭像"})
		return
	}

	if err := r.avatars.Delete(c.Request.Context(), *contact.AvatarKey); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "刪除頭像失敗"})
		return
	}
	contact.AvatarKey = nil
	if err := r.store.SaveContact(contact); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "刪除頭像失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "頭像已刪除"})
}

// ownedContact resolves the path parameter to a contact owned by the
// authenticated user. Foreign contacts look identical to missing ones.
func (r *ContactRouter) ownedContact(c *gin.Context) (*models.Contact, bool) {
	contactID, ok := pathID(c, "contact_id")
	if !ok {
		return nil, false
	}
	user := auth.CurrentUser(c)

	contact, err := r.store.GetContact(user.ID, contactID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "查詢聯絡人失敗"})
		return nil, false
	}
	if contact == nil {
		c.JSON(http.StatusNotFound, gin.H{"detail": "找不到聯絡人"})
		return nil, false
	}
	return contact, true
}

func pathID(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": "無效的 ID"})
		return 0, false
	}
	return uint(id), true
}

// pagination reads the skip/limit query parameters the frontend sends.
func pagination(c *gin.Context) (skip, limit int) {
	skip, _ = strconv.Atoi(c.DefaultQuery("skip", "0"))
	limit, _ = strconv.Atoi(c.DefaultQuery("limit", "100"))
	if skip < 0 {
		skip = 0
	}
	if limit < 1 || limit > 100 {
		limit = 100
	}
	return skip, limit
}

// pageFor converts a skip offset to the 1-based page of the envelope.
func pageFor(skip, limit int) int {
	return skip/limit + 1
}
