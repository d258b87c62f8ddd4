// Package playerstore is the MongoDB document store behind the
// resolver's cache. One database holds three collections: players
// (unique by name), gamelogs (keyed by player link + season + game
// date) and player_averages (keyed by player link + season).
package playerstore

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"brefstats/lib/bref"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
	"go.mongodb.org/mongo-driver/v2/mongo/readpref"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("lib/playerstore")

const databaseName = "nba_players"

type Store struct {
	client   *mongo.Client
	players  *mongo.Collection
	gamelogs *mongo.Collection
	averages *mongo.Collection
}

// Open connects and pings, so a bad connection string fails here and
// the caller can decide to run live-only instead.
func Open(ctx context.Context, url string) (*Store, error) {
	ctx, span := tracer.Start(ctx, "store:Open")
	defer span.End()

	client, err := mongo.Connect(options.Client().ApplyURI(url))
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to connect")
		return nil, fmt.Errorf("connect to store: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, time.Second*10)
	defer cancel()
	if err := client.Ping(pingCtx, readpref.Primary()); err != nil {
		_ = client.Disconnect(context.Background())
		span.RecordError(err)
		span.SetStatus(codes.Error, "failed to ping")
		return nil, fmt.Errorf("ping store: %w", err)
	}

	db := client.Database(databaseName)
	return &Store{
		client:   client,
		players:  db.Collection("players"),
		gamelogs: db.Collection("gamelogs"),
		averages: db.Collection("player_averages"),
	}, nil
}

func (s *Store) Close(ctx context.Context) error {
	return s.client.Disconnect(ctx)
}

// anchored case-insensitive prefix match, the same query shape the
// collections have always been searched with
func prefixFilter(field, prefix string) bson.M {
	return bson.M{field: bson.M{
		"$regex":   "^" + regexp.QuoteMeta(prefix),
		"$options": "i",
	}}
}

func (s *Store) FindPlayersByNamePrefix(ctx context.Context, prefix string) ([]bref.Player, error) {
	return s.findPlayers(ctx, prefixFilter("player", prefix))
}

func (s *Store) FindPlayersByInitial(ctx context.Context, initial string) ([]bref.Player, error) {
	// the link encodes the index initial, the name starts with the
	// first name
	return s.findPlayers(ctx, prefixFilter("link", fmt.Sprintf("/players/%s/", initial)))
}

func (s *Store) FindPlayerByLink(ctx context.Context, link string) (*bref.Player, error) {
	var player bref.Player
	err := s.players.FindOne(ctx, bson.M{"link": link}).Decode(&player)
	if err == mongo.ErrNoDocuments {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &player, nil
}

func (s *Store) findPlayers(ctx context.Context, filter bson.M) ([]bref.Player, error) {
	cur, err := s.players.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "player", Value: 1}}))
	if err != nil {
		return nil, err
	}
	var players []bref.Player
	if err := cur.All(ctx, &players); err != nil {
		return nil, err
	}
	return players, nil
}

func (s *Store) UpsertPlayers(ctx context.Context, players []bref.Player) error {
	ctx, span := tracer.Start(ctx, "store:UpsertPlayers")
	defer span.End()

	for _, p := range players {
		_, err := s.players.UpdateOne(ctx,
			bson.M{"player": p.Name},
			bson.M{"$set": p},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upsert failed")
			return fmt.Errorf("upsert player %q: %w", p.Name, err)
		}
	}
	return nil
}

func gameLogScope(playerLink, season string) bson.M {
	filter := bson.M{"player_link": playerLink}
	if season != "" {
		filter["season"] = season
	}
	return filter
}

func (s *Store) FindGameLogs(ctx context.Context, playerLink, season string) ([]bref.GameLogEntry, error) {
	cur, err := s.gamelogs.Find(ctx,
		gameLogScope(playerLink, season),
		options.Find().SetSort(bson.D{
			{Key: "season", Value: 1},
			{Key: "date_game", Value: 1},
		}),
	)
	if err != nil {
		return nil, err
	}
	var entries []bref.GameLogEntry
	if err := cur.All(ctx, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

// InsertGameLogs writes entries whose (link, season, date) key is not
// present yet and leaves existing rows untouched.
func (s *Store) InsertGameLogs(ctx context.Context, entries []bref.GameLogEntry) (int, error) {
	ctx, span := tracer.Start(ctx, "store:InsertGameLogs")
	defer span.End()

	inserted := 0
	for _, e := range entries {
		res, err := s.gamelogs.UpdateOne(ctx,
			bson.M{
				"player_link": e.PlayerLink,
				"season":      e.Season,
				"date_game":   e.Date,
			},
			bson.M{"$setOnInsert": e},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "insert failed")
			return inserted, fmt.Errorf("insert game log %s/%s/%s: %w", e.PlayerLink, e.Season, e.Date, err)
		}
		if res.UpsertedCount > 0 {
			inserted++
		}
	}
	return inserted, nil
}

func (s *Store) CountGameLogs(ctx context.Context, playerLink, season string) (int64, error) {
	return s.gamelogs.CountDocuments(ctx, gameLogScope(playerLink, season))
}

var missingNameFilter = bson.M{"$or": bson.A{
	bson.M{"player": bson.M{"$exists": false}},
	bson.M{"player": ""},
}}

func (s *Store) LinksMissingNames(ctx context.Context) ([]string, error) {
	var links []string
	err := s.gamelogs.Distinct(ctx, "player_link", missingNameFilter).Decode(&links)
	if err != nil {
		return nil, err
	}
	return links, nil
}

func (s *Store) SetGameLogNames(ctx context.Context, playerLink, name string) (int64, error) {
	ctx, span := tracer.Start(ctx, "store:SetGameLogNames")
	defer span.End()

	res, err := s.gamelogs.UpdateMany(ctx,
		bson.M{"player_link": playerLink},
		bson.M{"$set": bson.M{"player": name}},
	)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "update failed")
		return 0, err
	}
	return res.ModifiedCount, nil
}

func (s *Store) FindSeasonAverages(ctx context.Context, playerLink string) ([]bref.SeasonAverage, error) {
	cur, err := s.averages.Find(ctx,
		bson.M{"player_link": playerLink},
		options.Find().SetSort(bson.D{{Key: "season", Value: 1}}),
	)
	if err != nil {
		return nil, err
	}
	var rows []bref.SeasonAverage
	if err := cur.All(ctx, &rows); err != nil {
		return nil, err
	}
	return rows, nil
}

func (s *Store) UpsertSeasonAverages(ctx context.Context, rows []bref.SeasonAverage) error {
	ctx, span := tracer.Start(ctx, "store:UpsertSeasonAverages")
	defer span.End()

	for _, r := range rows {
		_, err := s.averages.UpdateOne(ctx,
			bson.M{"player_link": r.PlayerLink, "season": r.Season},
			bson.M{"$set": r},
			options.UpdateOne().SetUpsert(true),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, "upsert failed")
			return fmt.Errorf("upsert averages %s/%s: %w", r.PlayerLink, r.Season, err)
		}
	}
	return nil
}

func (s *Store) CountSeasonAverages(ctx context.Context, playerLink string) (int64, error) {
	return s.averages.CountDocuments(ctx, bson.M{"player_link": playerLink})
}
