package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"go-gin-product-api/internal/domain"
	"go-gin-product-api/internal/service"
	httpez "go-gin-product-api/internal/transport/http/ez"
)

type ProductOps interface {
	List(ctx context.Context) ([]service.ProductView, error)
	Add(ctx context.Context, owner *domain.User, name string, price float64) error
	Edit(ctx context.Context, caller *domain.User, id uint, name string, price float64) error
	Delete(ctx context.Context, caller *domain.User, id uint) error
}

type ProductHandler struct {
	products ProductOps
}

func NewProductHandler(products ProductOps) *ProductHandler {
	return &ProductHandler{products: products}
}

type listIn struct {
	httpez.TokenIn
}

type addIn struct {
	httpez.TokenIn
	Name  Text   `json:"name"`
	Price Number `json:"price"`
}

type editIn struct {
	httpez.TokenIn
	ID    Number `json:"id"`
	Name  Text   `json:"name"`
	Price Number `json:"price"`
}

type deleteIn struct {
	httpez.TokenIn
	ID Number `json:"id"`
}

// Mount 挂在 /product 分组下，全部需要 token
func (h *ProductHandler) Mount(ez httpez.EZ) {
	httpez.RegisterAction(ez, httpez.Action[listIn]{
		Method: http.MethodPost, Path: "/list", Binder: httpez.BindJSON, Auth: true,
		Handler: h.list,
	})
	httpez.RegisterAction(ez, httpez.Action[addIn]{
		Method: http.MethodPost, Path: "/add", Binder: httpez.BindJSON, Auth: true,
		Handler: h.add,
	})
	httpez.RegisterAction(ez, httpez.Action[editIn]{
		Method: http.MethodPut, Path: "/edit", Binder: httpez.BindJSON, Auth: true,
		Handler: h.edit,
	})
	httpez.RegisterAction(ez, httpez.Action[deleteIn]{
		Method: http.MethodDelete, Path: "/delete", Binder: httpez.BindJSON, Auth: true,
		Handler: h.delete,
	})
}

func (h *ProductHandler) list(c *gin.Context, _ *domain.User, _ *listIn) (gin.H, error) {
	ps, err := h.products.List(c.Request.Context())
	if err != nil {
		return nil, err
	}
	return gin.H{"products": ps}, nil
}

func (h *ProductHandler) add(c *gin.Context, u *domain.User, in *addIn) (gin.H, error) {
	return nil, h.products.Add(c.Request.Context(), u, in.Name.String(), in.Price.Float())
}

func (h *ProductHandler) edit(c *gin.Context, u *domain.User, in *editIn) (gin.H, error) {
	id, ok := in.ID.ID()
	if !ok {
		// 非法 id 不算缺失，但缺 name/price 仍先报 Missing input
		if service.IsEmpty(in.Name.String()) || in.Price.Float() == 0 {
			return nil, domain.ErrMissingInput
		}
		return nil, domain.ErrProductNotFound
	}
	return nil, h.products.Edit(c.Request.Context(), u, id, in.Name.String(), in.Price.Float())
}

func (h *ProductHandler) delete(c *gin.Context, u *domain.User, in *deleteIn) (gin.H, error) {
	id, ok := in.ID.ID()
	if !ok {
		return nil, domain.ErrProductNotFound
	}
	return nil, h.products.Delete(c.Request.Context(), u, id)
}
