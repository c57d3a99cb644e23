package catalog

import "paperpen/models"

// Seed is the bundled catalog. The store opened with these before the admin
// panel existed; they stay available even when the products collection is
// empty or unreachable, and admin-created products are merged in on top.
var Seed = []models.Product{
	{
		ProductID: "1",
		Name:      "Ball Pen",
		Category:  "pens",
		Price:     10,
		Image:     "/static/productpic/ball-pen.jpg",
		Colors:    []string{"Blue", "Black", "Red"},
	},
	{
		ProductID: "2",
		Name:      "Gel Pen",
		Category:  "pens",
		Price:     25,
		Image:     "/static/productpic/gel-pen.jpg",
		Colors:    []string{"Blue", "Black"},
	},
	{
		ProductID: "3",
		Name:      "Pencil",
		Category:  "pencils",
		Price:     5,
		Image:     "/static/productpic/pencil.jpg",
		Sizes:     []string{"HB", "2B", "4B"},
	},
	{
		ProductID: "4",
		Name:      "Notebook",
		Category:  "notebooks",
		Price:     60,
		Image:     "/static/productpic/notebook.jpg",
		Sizes:     []string{"A4", "A5"},
	},
	{
		ProductID: "5",
		Name:      "Eraser",
		Category:  "accessories",
		Price:     5,
		Image:     "/static/productpic/eraser.jpg",
	},
	{
		ProductID: "6",
		Name:      "Geometry Box",
		Category:  "accessories",
		Price:     120,
		Image:     "/static/productpic/geometry-box.jpg",
		Colors:    []string{"Blue", "Green"},
	},
	{
		ProductID: "7",
		Name:      "Sketch Pens",
		Category:  "art",
		Price:     80,
		Image:     "/static/productpic/sketch-pens.jpg",
		Sizes:     []string{"12 Pack", "24 Pack"},
	},
	{
		ProductID: "8",
		Name:      "School Bag",
		Category:  "bags",
		Price:     550,
		Image:     "/static/productpic/school-bag.jpg",
		Colors:    []string{"Red", "Blue", "Black"},
		Sizes:     []string{"Small", "Large"},
	},
}
