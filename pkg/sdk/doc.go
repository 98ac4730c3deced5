// Package contactdex provides an embeddable Go client for contactdex contact
// books, backed by Redis or an in-process store.
//
// Contacts are added once and queried with the find grammar used by the
// HTTP API and contactctl:
//
//	client, _ := contactdex.New(ctx, contactdex.WithRedis("localhost:6379", ""))
//	defer client.Close()
//
//	_, _ = client.Contacts().Add(ctx, contactdex.ContactInput{
//	    Name:    "Alex Yeoh",
//	    Phone:   "87438807",
//	    Email:   "alexyeoh@example.com",
//	    Address: "Blk 30 Geylang Street 29",
//	    Modules: []string{"CS2103T"},
//	})
//
//	res, err := client.Find(ctx, "-s n/Alex m/CS2103T")
//	if err != nil {
//	    fmt.Println(contactdex.UsageMessage(err))
//	}
//	fmt.Println(res.Message)
package contactdex
