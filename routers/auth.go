package routers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/Nat1anWasTaken/sitcon-camp-2025/auth"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/models"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/schemas"
	"github.com/Nat1anWasTaken/sitcon-camp-2025/stores"
)

// deleteConfirmation is the exact text required to delete an account.
const deleteConfirmation = "DELETE"

// AuthRouter handles registration, login and account management.
type AuthRouter struct {
	store stores.Store
	auth  *auth.Manager
}

func (r *AuthRouter) Register(rg *gin.RouterGroup, protected gin.HandlerFunc) {
	rg.POST("/register", r.register)
	rg.POST("/login", r.login)

	me := rg.Group("", protected)
	me.GET("/@me", r.currentUser)
	me.GET("/profile", r.profile)
	me.PUT("/password", r.changePassword)
	me.PUT("/preferences", r.updatePreferences)
	me.DELETE("/account", r.deactivateAccount)
	me.DELETE("/account/permanent", r.deleteAccount)
}

func (r *AuthRouter) register(c *gin.Context) {
	var req schemas.UserCreate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	if existing, err := r.store.GetUserByEmail(req.Email); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "註冊失敗"})
		return
	} else if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "電子郵件已被註冊"})
		return
	}
	if existing, err := r.store.GetUserByUsername(req.Username); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "註冊失敗"})
		return
	} else if existing != nil {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "用戶名已被使用"})
		return
	}

	hashed, err := auth.HashPassword(req.Password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "註冊失敗"})
		return
	}

	user := &models.User{
		Email:          req.Email,
		Username:       req.Username,
		FullName:       req.FullName,
		HashedPassword: hashed,
		IsActive:       true,
	}
	if err := r.store.CreateUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "註冊失敗"})
		return
	}
	c.JSON(http.StatusCreated, schemas.NewUserResponse(user))
}

// login accepts form-encoded credentials and returns a bearer token.
func (r *AuthRouter) login(c *gin.Context) {
	username := c.PostForm("username")
	password := c.PostForm("password")

	user, err := r.auth.Authenticate(username, password)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "登入失敗"})
		return
	}
	if user == nil {
		c.Header("WWW-Authenticate", "Bearer")
		c.JSON(http.StatusUnauthorized, gin.H{"detail": "用戶名或密碼錯誤"})
		return
	}

	token, err := r.auth.CreateAccessToken(user.Username)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "登入失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.Token{AccessToken: token, TokenType: "bearer"})
}

func (r *AuthRouter) currentUser(c *gin.Context) {
	c.JSON(http.StatusOK, schemas.NewUserResponse(auth.CurrentUser(c)))
}

func (r *AuthRouter) profile(c *gin.Context) {
	user := auth.CurrentUser(c)

	contacts, err := r.store.CountContacts(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "無法取得個人資料"})
		return
	}
	records, err := r.store.CountRecords(user.ID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "無法取得個人資料"})
		return
	}
	c.JSON(http.StatusOK, schemas.ProfileResponse{
		UserResponse:  schemas.NewUserResponse(user),
		ContactsCount: contacts,
		RecordsCount:  records,
	})
}

func (r *AuthRouter) changePassword(c *gin.Context) {
	var req schemas.PasswordChangeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	if !auth.VerifyPassword(req.CurrentPassword, user.HashedPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "當前密碼錯誤"})
		return
	}

	hashed, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "密碼修改失敗"})
		return
	}
	user.HashedPassword = hashed
	if err := r.store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "密碼修改失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "密碼修改成功"})
}

func (r *AuthRouter) updatePreferences(c *gin.Context) {
	var req schemas.UserPreferencesUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return
	}

	user := auth.CurrentUser(c)
	if req.Email != nil && *req.Email != user.Email {
		existing, err := r.store.GetUserByEmail(*req.Email)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"detail": "更新失敗"})
			return
		}
		if existing != nil {
			c.JSON(http.StatusBadRequest, gin.H{"detail": "電子郵件已被註冊"})
			return
		}
		user.Email = *req.Email
	}
	if req.FullName != nil {
		user.FullName = req.FullName
	}

	if err := r.store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "更新失敗"})
		return
	}
	c.JSON(http.StatusOK, schemas.NewUserResponse(user))
}

// deactivateAccount soft-deletes: the account is marked inactive and can no
// longer authenticate, but its data stays.
func (r *AuthRouter) deactivateAccount(c *gin.Context) {
	user, ok := r.confirmDeletion(c)
	if !ok {
		return
	}
	user.IsActive = false
	if err := r.store.SaveUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "帳號停用失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "帳號已停用"})
}

// deleteAccount permanently removes the account, its contacts and records.
func (r *AuthRouter) deleteAccount(c *gin.Context) {
	user, ok := r.confirmDeletion(c)
	if !ok {
		return
	}
	if err := r.store.DeleteUser(user); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"detail": "帳號刪除失敗"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "帳號已永久刪除"})
}

func (r *AuthRouter) confirmDeletion(c *gin.Context) (*models.User, bool) {
	var req schemas.AccountDeletionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusUnprocessableEntity, gin.H{"detail": err.Error()})
		return nil, false
	}
	if req.Confirmation != deleteConfirmation {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "確認文字錯誤，請輸入 DELETE"})
		return nil, false
	}
	user := auth.CurrentUser(c)
	if !auth.VerifyPassword(req.Password, user.HashedPassword) {
		c.JSON(http.StatusBadRequest, gin.H{"detail": "密碼錯誤"})
		return nil, false
	}
	return user, true
}
