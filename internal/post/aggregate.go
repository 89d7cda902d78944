package post

import (
	"strings"

	"gorm.io/gorm"

	"github.com/Grupo5-Biologia-Marina/server/internal/category"
	"github.com/Grupo5-Biologia-Marina/server/internal/database"
)

type ImageInput struct {
	URL     string `json:"url"`
	Caption string `json:"caption"`
	Credit  string `json:"credit"`
}

type CreateInput struct {
	Title      string       `json:"title"`
	Content    string       `json:"content"`
	Credits    string       `json:"credits"`
	Categories []string     `json:"categories"`
	Images     []ImageInput `json:"images"`
}

// Campos con puntero: nil = no tocar, presente (aunque vacío) = reemplazar.
type UpdateInput struct {
	Title      *string       `json:"title"`
	Content    *string       `json:"content"`
	Credits    *string       `json:"credits"`
	Categories *[]string     `json:"categories"`
	Images     *[]ImageInput `json:"images"`
}

func validateCreate(in CreateInput) []string {
	var errs []string
	if strings.TrimSpace(in.Title) == "" {
		errs = append(errs, "El título es obligatorio")
	}
	if len(in.Title) > 255 {
		errs = append(errs, "El título es demasiado largo")
	}
	if strings.TrimSpace(in.Content) == "" {
		errs = append(errs, "El contenido es obligatorio")
	}
	for _, img := range in.Images {
		if strings.TrimSpace(img.URL) == "" {
			errs = append(errs, "Cada imagen necesita una url")
			break
		}
	}
	return errs
}

// resolveCategories busca categorías por nombre. Los nombres que no existen
// se descartan en silencio: las categorías solo las crea un admin, nunca un
// post. La resolución por id no está soportada.
func resolveCategories(tx *gorm.DB, names []string) ([]category.Category, error) {
	if len(names) == 0 {
		return nil, nil
	}
	var cats []category.Category
	if err := tx.Where("name IN ?", names).Find(&cats).Error; err != nil {
		return nil, err
	}
	return cats, nil
}

// createAggregate crea el post con sus imágenes y categorías en una sola
// transacción: o se ve todo, o no se ve nada.
func createAggregate(ownerID string, in CreateInput) (uint, error) {
	var postID uint
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		p := Post{
			UserID:  ownerID,
			Title:   in.Title,
			Content: in.Content,
			Credits: in.Credits,
		}
		if err := tx.Create(&p).Error; err != nil {
			return err
		}

		if len(in.Categories) > 0 {
			cats, err := resolveCategories(tx, in.Categories)
			if err != nil {
				return err
			}
			if err := tx.Model(&p).Association("Categories").Replace(&cats); err != nil {
				return err
			}
		}

		for _, img := range in.Images {
			pi := PostImage{
				PostID:  p.ID,
				URL:     img.URL,
				Caption: img.Caption,
				Credit:  img.Credit,
			}
			if err := tx.Create(&pi).Error; err != nil {
				return err
			}
		}

		postID = p.ID
		return nil
	})
	return postID, err
}

// updateAggregate parchea los campos presentes. `images` presente (aunque
// vacío) reemplaza TODAS las imágenes; `categories` presente reemplaza el
// conjunto completo de asociaciones. Misma transacción única que en create.
func updateAggregate(p *Post, in UpdateInput) error {
	return database.DB.Transaction(func(tx *gorm.DB) error {
		updates := map[string]interface{}{}
		if in.Title != nil {
			updates["title"] = *in.Title
		}
		if in.Content != nil {
			updates["content"] = *in.Content
		}
		if in.Credits != nil {
			updates["credits"] = *in.Credits
		}
		if len(updates) > 0 {
			if err := tx.Model(p).Updates(updates).Error; err != nil {
				return err
			}
		}

		if in.Images != nil {
			if err := tx.Where("post_id = ?", p.ID).Delete(&PostImage{}).Error; err != nil {
				return err
			}
			for _, img := range *in.Images {
				pi := PostImage{
					PostID:  p.ID,
					URL:     img.URL,
					Caption: img.Caption,
					Credit:  img.Credit,
				}
				if err := tx.Create(&pi).Error; err != nil {
					return err
				}
			}
		}

		if in.Categories != nil {
			cats, err := resolveCategories(tx, *in.Categories)
			if err != nil {
				return err
			}
			if err := tx.Model(p).Association("Categories").Replace(&cats); err != nil {
				return err
			}
		}

		return nil
	})
}

// fetchAggregate trae el post con usuario, categorías e imágenes.
func fetchAggregate(id uint) (*Post, error) {
	var p Post
	err := database.DB.
		Preload("User").
		Preload("Categories").
		Preload("Images").
		First(&p, id).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
