package repository

import (
	"context"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"blogapi/internal/db"
	"blogapi/internal/model"
)

// PostRepository defines post persistence operations. Every mutation is a single
// document update, so concurrent comment edits on one post never lose each other.
// Methods addressing one post return mongo.ErrNoDocuments when it does not exist.
type PostRepository interface {
	Create(ctx context.Context, post *model.Post) error
	List(ctx context.Context) ([]model.Post, error)
	FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error)
	// UpdateContent sets the non-empty fields among title and content.
	UpdateContent(ctx context.Context, id primitive.ObjectID, title, content string) (*model.Post, error)
	Delete(ctx context.Context, id primitive.ObjectID) error
	PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error)
	PullComment(ctx context.Context, id, commentID primitive.ObjectID) (*model.Post, error)
	// RemoveCommentAt drops the comment at index, matching only while that index exists.
	RemoveCommentAt(ctx context.Context, id primitive.ObjectID, index int) (*model.Post, error)
}

type postRepository struct {
	coll *mongo.Collection
}

// NewPostRepository creates a new post repository.
func NewPostRepository(database *mongo.Database) PostRepository {
	return &postRepository{coll: database.Collection(db.PostsCollection)}
}

// Create inserts a new post, assigning its id.
func (r *postRepository) Create(ctx context.Context, post *model.Post) error {
	if post.ID.IsZero() {
		post.ID = primitive.NewObjectID()
	}
	if post.Comments == nil {
		post.Comments = []model.Comment{}
	}
	_, err := r.coll.InsertOne(ctx, post)
	return err
}

// List returns every post in insertion order.
func (r *postRepository) List(ctx context.Context) ([]model.Post, error) {
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: 1}})
	cursor, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	posts := []model.Post{}
	if err := cursor.All(ctx, &posts); err != nil {
		return nil, err
	}
	return posts, nil
}

// FindByID finds a post by ID.
func (r *postRepository) FindByID(ctx context.Context, id primitive.ObjectID) (*model.Post, error) {
	var post model.Post
	if err := r.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (r *postRepository) UpdateContent(ctx context.Context, id primitive.ObjectID, title, content string) (*model.Post, error) {
	set := bson.M{}
	if title != "" {
		set["title"] = title
	}
	if content != "" {
		set["content"] = content
	}
	if len(set) == 0 {
		return r.FindByID(ctx, id)
	}
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$set": set})
}

// Delete removes the post together with its embedded comments.
func (r *postRepository) Delete(ctx context.Context, id primitive.ObjectID) error {
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return mongo.ErrNoDocuments
	}
	return nil
}

func (r *postRepository) PushComment(ctx context.Context, id primitive.ObjectID, comment model.Comment) (*model.Post, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$push": bson.M{"comments": comment}})
}

func (r *postRepository) PullComment(ctx context.Context, id, commentID primitive.ObjectID) (*model.Post, error) {
	return r.findOneAndUpdate(ctx, bson.M{"_id": id}, bson.M{"$pull": bson.M{"comments": bson.M{"_id": commentID}}})
}

func (r *postRepository) RemoveCommentAt(ctx context.Context, id primitive.ObjectID, index int) (*model.Post, error) {
	filter := bson.M{
		"_id":                               id,
		"comments." + strconv.Itoa(index): bson.M{"$exists": true},
	}
	// comments = comments[:index] ++ comments[index+1:]
	update := mongo.Pipeline{
		{{Key: "$set", Value: bson.M{
			"comments": bson.M{"$concatArrays": bson.A{
				bson.M{"$slice": bson.A{"$comments", index}},
				bson.M{"$slice": bson.A{"$comments", index + 1, bson.M{"$size": "$comments"}}},
			}},
		}}},
	}
	return r.findOneAndUpdate(ctx, filter, update)
}

func (r *postRepository) findOneAndUpdate(ctx context.Context, filter, update interface{}) (*model.Post, error) {
	opts := options.FindOneAndUpdate().SetReturnDocument(options.After)
	var post model.Post
	if err := r.coll.FindOneAndUpdate(ctx, filter, update, opts).Decode(&post); err != nil {
		return nil, err
	}
	return &post, nil
}
