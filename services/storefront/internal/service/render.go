package service

import (
	"context"
	"errors"
	"log/slog"
	"strconv"
	"sync"

	"golang.org/x/sync/errgroup"

	apperrors "github.com/Roselynepj1/Flowerpower/pkg/errors"
	"github.com/Roselynepj1/Flowerpower/pkg/logger"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/catalog"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/domain"
	"github.com/Roselynepj1/Flowerpower/services/storefront/internal/render"
)

// view names a render task and the page elements it owns.
type view struct {
	name      string
	container string
	skeleton  string
}

var (
	popularView  = view{"popular", render.PopularContainer, render.PopularSkeletons}
	catalogView  = view{"catalog", render.CatalogContainer, render.CatalogSkeletons}
	slideView    = view{"slideshow", render.SlideContainer, render.SlideSkeletons}
	checkoutView = view{"checkout", render.CheckoutContainer, render.CheckoutSkeletons}
	detailView   = view{"product", render.DetailContainer, render.DetailSkeletons}
)

// RenderHome fills a page with the views that take no filter criteria.
func (s *StorefrontService) RenderHome(ctx context.Context, page render.Renderer, shopperID string) error {
	return s.RenderPage(ctx, page, domain.FilterCriteria{}, shopperID)
}

// RenderPage runs the popular, catalog, slideshow and checkout views
// concurrently against page, plus the cart badge when shopperID is set.
// Views whose container is missing do nothing. A failing view empties only
// its own container; the returned error is non-nil only when ctx ended.
func (s *StorefrontService) RenderPage(ctx context.Context, page render.Renderer, criteria domain.FilterCriteria, shopperID string) error {
	// Views report failures into the page, never to each other.
	var wg sync.WaitGroup
	for _, task := range []func(){
		func() { s.renderPopular(ctx, page) },
		func() { s.renderCatalog(ctx, page, criteria) },
		func() { s.renderSlideshow(ctx, page) },
		func() { s.renderCheckout(ctx, page, shopperID) },
		func() { s.renderBadge(ctx, page, shopperID) },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			task()
		}()
	}
	wg.Wait()
	return ctx.Err()
}

// RenderProduct fills the product detail view for id. A NotFound error is
// returned so the caller can answer 404 with the rendered page.
func (s *StorefrontService) RenderProduct(ctx context.Context, page render.Renderer, id int, shopperID string) error {
	var g errgroup.Group

	g.Go(func() error { return s.renderDetail(ctx, page, id) })
	g.Go(func() error { s.renderBadge(ctx, page, shopperID); return nil })

	if err := g.Wait(); err != nil {
		return err
	}
	return ctx.Err()
}

func (s *StorefrontService) renderPopular(ctx context.Context, page render.Renderer) {
	if !page.Has(popularView.container) {
		return
	}

	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		s.viewFailed(ctx, page, popularView, err)
		return
	}
	frags, err := render.ProductCards(catalog.Popular(products))
	if err != nil {
		s.viewFailed(ctx, page, popularView, err)
		return
	}

	page.Hide(popularView.skeleton)
	page.RenderList(popularView.container, frags)
	renderTasksTotal.WithLabelValues(popularView.name, outcomeRendered).Inc()
}

func (s *StorefrontService) renderCatalog(ctx context.Context, page render.Renderer, criteria domain.FilterCriteria) {
	if !page.Has(catalogView.container) {
		return
	}

	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		s.viewFailed(ctx, page, catalogView, err)
		return
	}

	page.Hide(catalogView.skeleton)
	echoCriteria(page, criteria)
	s.noteSortKey(ctx, criteria.SortBy)

	filtered := catalog.FilterAndSort(products, criteria)
	if len(filtered) == 0 {
		page.ShowEmptyState(catalogView.container)
		renderTasksTotal.WithLabelValues(catalogView.name, outcomeEmpty).Inc()
		return
	}

	frags, err := render.ProductCards(filtered)
	if err != nil {
		s.viewFailed(ctx, page, catalogView, err)
		return
	}

	page.Show(render.FilterOptions)
	page.RenderList(catalogView.container, frags)
	renderTasksTotal.WithLabelValues(catalogView.name, outcomeRendered).Inc()
}

func (s *StorefrontService) renderSlideshow(ctx context.Context, page render.Renderer) {
	if !page.Has(slideView.container) {
		return
	}

	products, err := s.catalog.FetchCatalog(ctx)
	if err != nil {
		s.viewFailed(ctx, page, slideView, err)
		return
	}
	frags, err := render.Slides(catalog.Slideshow(products))
	if err != nil {
		s.viewFailed(ctx, page, slideView, err)
		return
	}

	page.Hide(slideView.skeleton)
	page.RenderList(slideView.container, frags)
	renderTasksTotal.WithLabelValues(slideView.name, outcomeRendered).Inc()
}

func (s *StorefrontService) renderCheckout(ctx context.Context, page render.Renderer, shopperID string) {
	if !page.Has(checkoutView.container) {
		return
	}

	checkout, err := s.GetCheckout(ctx, shopperID)
	if err != nil {
		s.viewFailed(ctx, page, checkoutView, err)
		return
	}

	page.Hide(checkoutView.skeleton)
	if len(checkout.Rows) == 0 {
		page.RenderList(checkoutView.container, []render.Fragment{render.NoCheckoutProducts()})
		renderTasksTotal.WithLabelValues(checkoutView.name, outcomeEmpty).Inc()
		return
	}

	frags, err := render.CheckoutRows(checkout.Rows)
	if err != nil {
		s.viewFailed(ctx, page, checkoutView, err)
		return
	}

	page.SetText(render.CheckoutTotal, checkout.Rows[0].Product.Prices.Format(checkout.Total))
	page.RenderList(checkoutView.container, frags)
	renderTasksTotal.WithLabelValues(checkoutView.name, outcomeRendered).Inc()
}

func (s *StorefrontService) renderDetail(ctx context.Context, page render.Renderer, id int) error {
	if !page.Has(detailView.container) {
		return nil
	}

	product, err := s.catalog.FetchProduct(ctx, id)
	if err != nil {
		s.viewFailed(ctx, page, detailView, err)
		if errors.Is(err, apperrors.ErrNotFound) {
			return err
		}
		return nil
	}
	frag, err := render.ProductDetail(*product)
	if err != nil {
		s.viewFailed(ctx, page, detailView, err)
		return nil
	}

	page.Hide(detailView.skeleton)
	page.RenderList(detailView.container, []render.Fragment{frag})
	renderTasksTotal.WithLabelValues(detailView.name, outcomeRendered).Inc()
	return nil
}

func (s *StorefrontService) renderBadge(ctx context.Context, page render.Renderer, shopperID string) {
	if shopperID == "" || !page.Has(render.CartBadge) {
		return
	}

	count, err := s.Badge(ctx, shopperID)
	if err != nil {
		logger.WithContext(ctx, s.logger).WarnContext(ctx, "cart badge unavailable",
			slog.String("error", err.Error()),
		)
		return
	}
	page.SetText(render.CartBadge, strconv.Itoa(count))
}

// viewFailed hides the view's skeleton and leaves its empty-state marker.
func (s *StorefrontService) viewFailed(ctx context.Context, page render.Renderer, v view, err error) {
	logger.WithContext(ctx, s.logger).WarnContext(ctx, "view could not be rendered",
		slog.String("view", v.name),
		slog.String("error", err.Error()),
	)
	renderTasksTotal.WithLabelValues(v.name, outcomeFailed).Inc()

	page.Hide(v.skeleton)
	if v == checkoutView {
		page.RenderList(v.container, []render.Fragment{render.NoCheckoutProducts()})
		return
	}
	page.ShowEmptyState(v.container)
}

// echoCriteria writes the applied filters back into the filter form.
func echoCriteria(page render.Renderer, c domain.FilterCriteria) {
	if c.PriceFrom != nil {
		page.SetValue(render.PriceFromInput, c.PriceFrom.String())
	}
	if c.PriceTo != nil {
		page.SetValue(render.PriceToInput, c.PriceTo.String())
	}
	if c.InStock != nil {
		page.SetValue(render.InStockInput, strconv.FormatBool(*c.InStock))
	}
	if c.OnSale != nil {
		page.SetValue(render.OnSaleInput, strconv.FormatBool(*c.OnSale))
	}
	if c.SearchTerm != "" {
		page.SetValue(render.SearchInput, c.SearchTerm)
	}
	if c.SortBy != "" {
		page.SetValue(render.SortInput, string(c.SortBy))
	}
}
