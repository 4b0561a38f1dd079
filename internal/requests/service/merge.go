package service

import "shareit/pkg/model"

// mergeItems builds views in request order and attaches each item to the
// request it answers. Items pointing at requests outside the slice are skipped.
func mergeItems(requests []*model.Request, items []*model.Item) []*model.RequestView {
	views := make([]*model.RequestView, 0, len(requests))
	byID := make(map[int64]*model.RequestView, len(requests))
	for _, r := range requests {
		v := &model.RequestView{
			ID:          r.ID,
			Description: r.Description,
			Created:     model.NewTimestamp(r.Created),
			Items:       []*model.RequestItem{},
		}
		byID[r.ID] = v
		views = append(views, v)
	}

	for _, item := range items {
		if item.RequestID == nil {
			continue
		}
		v, ok := byID[*item.RequestID]
		if !ok {
			continue
		}
		v.Items = append(v.Items, &model.RequestItem{
			ID:          item.ID,
			Name:        item.Name,
			Description: item.Description,
			Available:   item.Available,
			RequestID:   *item.RequestID,
			OwnerID:     item.OwnerID,
		})
	}
	return views
}

func requestIDs(requests []*model.Request) []int64 {
	ids := make([]int64, len(requests))
	for i, r := range requests {
		ids[i] = r.ID
	}
	return ids
}
