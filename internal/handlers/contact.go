package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/rolodex-dev/rolodex/db"
	"github.com/rolodex-dev/rolodex/internal/models"
	"github.com/rolodex-dev/rolodex/internal/utils"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// BirthdayLayout is the wire format for contact birthdays.
const BirthdayLayout = "2006-01-02"

type UpdateContactRequest struct {
	First    string            `json:"first"`
	Last     string            `json:"last"`
	Avatar   string            `json:"avatar"`
	Bio      string            `json:"bio"`
	Company  string            `json:"company"`
	Location string            `json:"location"`
	Birthday string            `json:"birthday"` // YYYY-MM-DD, empty clears
	Socials  map[string]string `json:"socials"`  // Link name -> URL
}

type SetFavoriteRequest struct {
	Favorite *bool `json:"favorite" binding:"required"`
}

type ContactResponse struct {
	ID       uint              `json:"id"`
	First    string            `json:"first"`
	Last     string            `json:"last"`
	Avatar   string            `json:"avatar"`
	Bio      string            `json:"bio"`
	Company  string            `json:"company"`
	Location string            `json:"location"`
	Birthday string            `json:"birthday"`
	Socials  map[string]string `json:"socials"`
	Favorite bool              `json:"favorite"`
}

func contactResponse(contact models.Contact) ContactResponse {
	response := ContactResponse{
		ID:       contact.ID,
		First:    contact.First,
		Last:     contact.Last,
		Avatar:   contact.Avatar,
		Bio:      contact.Bio,
		Company:  contact.Company,
		Location: contact.Location,
		Socials:  map[string]string{},
		Favorite: contact.Favorite,
	}

	if contact.Birthday != nil {
		response.Birthday = contact.Birthday.Format(BirthdayLayout)
	}

	if len(contact.Socials) > 0 {
		if err := json.Unmarshal(contact.Socials, &response.Socials); err != nil {
			response.Socials = map[string]string{}
		}
	}

	return response
}

// findOwnedContact loads a contact scoped by the requesting user. Ownership is
// always enforced here, never from client input alone.
func findOwnedContact(ctx *gin.Context) (models.Contact, bool) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return models.Contact{}, false
	}

	contactID, err := utils.GetContactID(ctx)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return models.Contact{}, false
	}

	var contact models.Contact

	if err := db.DB.Where("id = ? AND user_id = ?", contactID, userID).First(&contact).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			ctx.JSON(http.StatusNotFound, gin.H{"error": "Contact not found"})
		} else {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contact"})
		}
		return models.Contact{}, false
	}

	return contact, true
}

// CreateContact starts a blank contact owned by the requesting user; the
// client follows up with an edit.
func CreateContact(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	contact := models.Contact{
		UserID: userID,
	}

	if err := db.DB.Create(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create contact"})
		return
	}

	ctx.JSON(http.StatusCreated, contactResponse(contact))
}

func ListContacts(ctx *gin.Context) {
	userID, err := utils.GetCurrentUserID(ctx)

	if err != nil {
		ctx.JSON(http.StatusUnauthorized, gin.H{"error": "User not authenticated"})
		return
	}

	query := db.DB.Where("user_id = ?", userID)

	if q := strings.TrimSpace(ctx.Query("q")); q != "" {
		pattern := "%" + q + "%"
		query = query.Where("first ILIKE ? OR last ILIKE ?", pattern, pattern)
	}

	var contacts []models.Contact

	if err := query.Order("last ASC, created_at DESC").Find(&contacts).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to retrieve contacts"})
		return
	}

	response := make([]ContactResponse, 0, len(contacts))

	for _, contact := range contacts {
		response = append(response, contactResponse(contact))
	}

	ctx.JSON(http.StatusOK, response)
}

func GetContact(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	ctx.JSON(http.StatusOK, contactResponse(contact))
}

func UpdateContact(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	var body UpdateContactRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	fieldErrors := make(map[string][]string)

	contact.First = strings.TrimSpace(body.First)
	contact.Last = strings.TrimSpace(body.Last)
	contact.Bio = strings.TrimSpace(body.Bio)
	contact.Company = strings.TrimSpace(body.Company)
	contact.Location = strings.TrimSpace(body.Location)

	if body.Avatar != "" {
		avatar, err := utils.NormalizeLink(body.Avatar)
		if err != nil {
			fieldErrors["avatar"] = append(fieldErrors["avatar"], "Avatar URL is invalid")
		}
		contact.Avatar = avatar
	} else {
		contact.Avatar = ""
	}

	if body.Birthday != "" {
		birthday, err := time.Parse(BirthdayLayout, body.Birthday)
		if err != nil {
			fieldErrors["birthday"] = append(fieldErrors["birthday"], "Birthday must be in YYYY-MM-DD format")
		} else {
			contact.Birthday = &birthday
		}
	} else {
		contact.Birthday = nil
	}

	socials := make(map[string]string, len(body.Socials))

	for name, link := range body.Socials {
		normalized, err := utils.NormalizeLink(link)
		if err != nil {
			fieldErrors["socials."+name] = append(fieldErrors["socials."+name], "Link URL is invalid")
			continue
		}
		socials[name] = normalized
	}

	if len(fieldErrors) > 0 {
		ctx.JSON(http.StatusBadRequest, gin.H{"errors": fieldErrors})
		return
	}

	socialsJSON, err := json.Marshal(socials)

	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid socials format"})
		return
	}

	contact.Socials = datatypes.JSON(socialsJSON)

	if err := db.DB.Save(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}

	ctx.JSON(http.StatusOK, contactResponse(contact))
}

func SetFavorite(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	var body SetFavoriteRequest

	if err := ctx.BindJSON(&body); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request"})
		return
	}

	contact.Favorite = *body.Favorite

	if err := db.DB.Model(&contact).Update("favorite", contact.Favorite).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update contact"})
		return
	}

	ctx.JSON(http.StatusOK, contactResponse(contact))
}

func DeleteContact(ctx *gin.Context) {
	contact, ok := findOwnedContact(ctx)

	if !ok {
		return
	}

	// Cascades to the contact's notes and tasks
	if err := db.DB.Delete(&contact).Error; err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete contact"})
		return
	}

	ctx.Status(http.StatusNoContent)
}
