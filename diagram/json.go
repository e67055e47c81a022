package diagram

import "encoding/json"

// Early saved files stored a single tree per page under "rootNode". The
// current shape is a forest under "items"; loading migrates the old shape
// transparently so persistence and import only ever see the new one.

// UnmarshalJSON decodes a page, migrating the legacy single-root shape.
func (p *Page) UnmarshalJSON(data []byte) error {
	type page Page // drop methods to avoid recursion
	aux := struct {
		*page
		RootNode *Node `json:"rootNode"`
	}{page: (*page)(p)}
	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}
	if len(p.Items) == 0 && aux.RootNode != nil {
		p.Items = []*Node{aux.RootNode}
	}
	return nil
}
